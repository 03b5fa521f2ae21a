package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/abitur-registration/internal/models"
)

// CohortRepository manages persistence for Abitur cohorts.
type CohortRepository struct {
	db *sqlx.DB
}

// NewCohortRepository constructs a CohortRepository.
func NewCohortRepository(db *sqlx.DB) *CohortRepository {
	return &CohortRepository{db: db}
}

// ListActive returns cohorts open for registration, newest year first.
func (r *CohortRepository) ListActive(ctx context.Context) ([]models.Cohort, error) {
	const query = `SELECT id, jahrgang, aktiv FROM abitur_jahrgaenge WHERE aktiv = TRUE ORDER BY jahrgang DESC`
	cohorts := []models.Cohort{}
	if err := r.db.SelectContext(ctx, &cohorts, query); err != nil {
		return nil, fmt.Errorf("list active cohorts: %w", err)
	}
	return cohorts, nil
}

// ListWithCounts returns every cohort with its number of registered students.
func (r *CohortRepository) ListWithCounts(ctx context.Context) ([]models.CohortSummary, error) {
	const query = `SELECT a.id, a.jahrgang, a.aktiv, COUNT(s.id) AS schueler_anzahl
FROM abitur_jahrgaenge a
LEFT JOIN schueler_daten s ON a.id = s.jahrgang_id
GROUP BY a.id, a.jahrgang, a.aktiv
ORDER BY a.jahrgang DESC`
	cohorts := []models.CohortSummary{}
	if err := r.db.SelectContext(ctx, &cohorts, query); err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	return cohorts, nil
}

// FindByID returns a cohort or sql.ErrNoRows.
func (r *CohortRepository) FindByID(ctx context.Context, id int64) (*models.Cohort, error) {
	const query = `SELECT id, jahrgang, aktiv FROM abitur_jahrgaenge WHERE id = $1`
	var cohort models.Cohort
	if err := r.db.GetContext(ctx, &cohort, query, id); err != nil {
		return nil, translate(err, "find cohort")
	}
	return &cohort, nil
}

// Create inserts an active cohort. A taken year yields ErrDuplicate.
func (r *CohortRepository) Create(ctx context.Context, year int) (*models.Cohort, error) {
	const query = `INSERT INTO abitur_jahrgaenge (jahrgang, aktiv) VALUES ($1, TRUE) RETURNING id, jahrgang, aktiv`
	var cohort models.Cohort
	if err := r.db.GetContext(ctx, &cohort, query, year); err != nil {
		return nil, translate(err, "create cohort")
	}
	return &cohort, nil
}

// ToggleActive flips the active flag and returns the updated cohort, or sql.ErrNoRows.
func (r *CohortRepository) ToggleActive(ctx context.Context, id int64) (*models.Cohort, error) {
	const query = `UPDATE abitur_jahrgaenge SET aktiv = NOT aktiv WHERE id = $1 RETURNING id, jahrgang, aktiv`
	var cohort models.Cohort
	if err := r.db.GetContext(ctx, &cohort, query, id); err != nil {
		return nil, translate(err, "toggle cohort")
	}
	return &cohort, nil
}

// DeleteCascade removes a cohort and all of its student records in one transaction.
// The cohort row is locked first so no registration can slip in between count and delete.
func (r *CohortRepository) DeleteCascade(ctx context.Context, id int64) (res *models.CohortDeletion, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cohort delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var year int
	if err = tx.GetContext(ctx, &year, `SELECT jahrgang FROM abitur_jahrgaenge WHERE id = $1 FOR UPDATE`, id); err != nil {
		return nil, translate(err, "lock cohort")
	}

	var count int
	if err = tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM schueler_daten WHERE jahrgang_id = $1`, id); err != nil {
		return nil, fmt.Errorf("count cohort students: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM schueler_daten WHERE jahrgang_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete cohort students: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM abitur_jahrgaenge WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete cohort: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cohort delete: %w", err)
	}
	return &models.CohortDeletion{CohortID: id, Year: year, DeletedStudents: count}, nil
}
