package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/abitur-registration/internal/models"
)

// StudentRepository manages persistence for student registrations.
type StudentRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a registration. An unknown cohort yields ErrForeignKey.
func (r *StudentRepository) Create(ctx context.Context, rec *models.StudentRecord) error {
	const query = `INSERT INTO schueler_daten (jahrgang_id, vorname, nachname, email, datenschutz_einwilligung)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, datenschutz_datum, erstellt_am`
	row := r.db.QueryRowxContext(ctx, query, rec.CohortID, rec.FirstName, rec.LastName, rec.Email, rec.ConsentGiven)
	if err := row.Scan(&rec.ID, &rec.ConsentTimestamp, &rec.CreatedAt); err != nil {
		return translate(err, "create student")
	}
	return nil
}

// List returns student records joined with their cohort year, newest registration first.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, error) {
	builder := r.sb.Select(
		"s.id", "s.jahrgang_id", "s.vorname", "s.nachname", "s.email",
		"COALESCE(s.datenschutz_einwilligung, TRUE) AS datenschutz_einwilligung",
		"COALESCE(s.datenschutz_datum, s.erstellt_am) AS datenschutz_datum",
		"s.erstellt_am", "a.jahrgang",
	).
		From("schueler_daten s").
		Join("abitur_jahrgaenge a ON s.jahrgang_id = a.id").
		OrderBy("s.erstellt_am DESC", "s.id DESC")
	if filter.CohortID != nil {
		builder = builder.Where(sq.Eq{"s.jahrgang_id": *filter.CohortID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list students query: %w", err)
	}

	students := []models.StudentDetail{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ExportRows returns the rows for CSV/PDF exports. All cohorts sort by year descending then name;
// a single cohort sorts by name only.
func (r *StudentRepository) ExportRows(ctx context.Context, filter models.StudentFilter) ([]models.StudentExportRow, error) {
	builder := r.sb.Select(
		"s.jahrgang_id", "a.jahrgang", "s.vorname", "s.nachname", "s.email",
		"COALESCE(s.datenschutz_einwilligung, TRUE) AS datenschutz_einwilligung",
		"COALESCE(s.datenschutz_datum, s.erstellt_am) AS datenschutz_datum",
		"s.erstellt_am",
	).
		From("schueler_daten s").
		Join("abitur_jahrgaenge a ON s.jahrgang_id = a.id")

	if filter.CohortID != nil {
		builder = builder.Where(sq.Eq{"s.jahrgang_id": *filter.CohortID}).
			OrderBy("s.nachname", "s.vorname")
	} else {
		builder = builder.OrderBy("a.jahrgang DESC", "s.nachname", "s.vorname")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build export query: %w", err)
	}

	rows := []models.StudentExportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("export students: %w", err)
	}
	return rows, nil
}

// Stats counts registrations and the cohorts that have at least one.
func (r *StudentRepository) Stats(ctx context.Context) (*models.StudentStats, error) {
	const query = `SELECT COUNT(*) AS total_schueler, COUNT(DISTINCT jahrgang_id) AS aktive_jahrgaenge FROM schueler_daten`
	var stats models.StudentStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("student stats: %w", err)
	}
	return &stats, nil
}

// Delete removes a single student record and reports whether it existed.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schueler_daten WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student rows affected: %w", err)
	}
	return affected > 0, nil
}
