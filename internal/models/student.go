package models

import "time"

// StudentRecord is one registration submitted through the public form.
type StudentRecord struct {
	ID               int64      `db:"id" json:"id"`
	CohortID         int64      `db:"jahrgang_id" json:"cohort_id"`
	FirstName        string     `db:"vorname" json:"first_name"`
	LastName         string     `db:"nachname" json:"last_name"`
	Email            string     `db:"email" json:"email"`
	ConsentGiven     bool       `db:"datenschutz_einwilligung" json:"consent_given"`
	ConsentTimestamp *time.Time `db:"datenschutz_datum" json:"consent_timestamp,omitempty"`
	CreatedAt        time.Time  `db:"erstellt_am" json:"created_at"`
}

// StudentDetail is a student record joined with its cohort year.
type StudentDetail struct {
	StudentRecord
	CohortYear int `db:"jahrgang" json:"cohort_year"`
}

// StudentExportRow is the flattened shape read for CSV/PDF exports. Consent columns are already
// coalesced so rows written before the consent migration read as consenting at creation time.
type StudentExportRow struct {
	CohortID         int64     `db:"jahrgang_id"`
	CohortYear       int       `db:"jahrgang"`
	FirstName        string    `db:"vorname"`
	LastName         string    `db:"nachname"`
	Email            string    `db:"email"`
	ConsentGiven     bool      `db:"datenschutz_einwilligung"`
	ConsentTimestamp time.Time `db:"datenschutz_datum"`
	CreatedAt        time.Time `db:"erstellt_am"`
}

// StudentFilter narrows student listings and exports. A nil CohortID means all cohorts.
type StudentFilter struct {
	CohortID *int64
}

// StudentStats aggregates registrations for the dashboard.
type StudentStats struct {
	TotalStudents       int `db:"total_schueler" json:"total_students"`
	CohortsWithStudents int `db:"aktive_jahrgaenge" json:"cohorts_with_students"`
}
