package models

// Cohort is a yearly Abitur group ("Jahrgang") that students register under.
type Cohort struct {
	ID     int64 `db:"id" json:"id"`
	Year   int   `db:"jahrgang" json:"year"`
	Active bool  `db:"aktiv" json:"active"`
}

// CohortSummary is a cohort with the number of registered students.
type CohortSummary struct {
	Cohort
	StudentCount int `db:"schueler_anzahl" json:"student_count"`
}

// Cohort year bounds accepted by the admin console.
const (
	MinCohortYear = 1900
	MaxCohortYear = 2100
)

// CohortDeletion reports the outcome of a cascading cohort delete.
type CohortDeletion struct {
	CohortID        int64 `json:"cohort_id"`
	Year            int   `json:"year"`
	DeletedStudents int   `json:"deleted_students"`
}
