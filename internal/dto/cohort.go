package dto

// CreateCohortRequest adds a cohort year. Year is parsed by the service so that
// non-numeric input yields the same validation failure as an out-of-range year.
type CreateCohortRequest struct {
	Year string `form:"jahrgang" json:"jahrgang"`
}

// CohortToggleResult reports the state a cohort was switched into.
type CohortToggleResult struct {
	ID     int64 `json:"id"`
	Year   int   `json:"year"`
	Active bool  `json:"active"`
}
