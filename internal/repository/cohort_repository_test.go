package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCohortMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCohortRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	rows := sqlmock.NewRows([]string{"id", "jahrgang", "aktiv"}).
		AddRow(2, 2026, true).
		AddRow(1, 2025, true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, jahrgang, aktiv FROM abitur_jahrgaenge WHERE aktiv = TRUE ORDER BY jahrgang DESC")).
		WillReturnRows(rows)

	cohorts, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, cohorts, 2)
	assert.Equal(t, 2026, cohorts[0].Year)
	assert.True(t, cohorts[1].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryListWithCounts(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	rows := sqlmock.NewRows([]string{"id", "jahrgang", "aktiv", "schueler_anzahl"}).
		AddRow(3, 2027, false, 0).
		AddRow(2, 2026, true, 14)
	mock.ExpectQuery("LEFT JOIN schueler_daten s ON a.id = s.jahrgang_id").WillReturnRows(rows)

	cohorts, err := repo.ListWithCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, cohorts, 2)
	assert.Equal(t, 0, cohorts[0].StudentCount)
	assert.False(t, cohorts[0].Active)
	assert.Equal(t, 14, cohorts[1].StudentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectQuery("INSERT INTO abitur_jahrgaenge").
		WithArgs(2026).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), 2026)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectQuery("INSERT INTO abitur_jahrgaenge").
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"id", "jahrgang", "aktiv"}).AddRow(7, 2026, true))

	cohort, err := repo.Create(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cohort.ID)
	assert.True(t, cohort.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryToggleMissing(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE abitur_jahrgaenge SET aktiv = NOT aktiv WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "jahrgang", "aktiv"}))

	_, err := repo.ToggleActive(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryDeleteCascade(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT jahrgang FROM abitur_jahrgaenge WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"jahrgang"}).AddRow(2024))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM schueler_daten WHERE jahrgang_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schueler_daten WHERE jahrgang_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM abitur_jahrgaenge WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.DeleteCascade(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, 3, res.DeletedStudents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryDeleteCascadeMissing(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT jahrgang FROM abitur_jahrgaenge").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"jahrgang"}))
	mock.ExpectRollback()

	_, err := repo.DeleteCascade(context.Background(), 4)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryDeleteCascadeRollsBack(t *testing.T) {
	db, mock, cleanup := newCohortMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT jahrgang FROM abitur_jahrgaenge").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"jahrgang"}).AddRow(2024))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("DELETE FROM schueler_daten").
		WithArgs(int64(4)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.DeleteCascade(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete cohort students")
	assert.NoError(t, mock.ExpectationsWereMet())
}
