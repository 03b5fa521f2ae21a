package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/internal/models"
	"github.com/noah-isme/abitur-registration/internal/repository"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
)

type cohortRepository interface {
	ListActive(ctx context.Context) ([]models.Cohort, error)
	ListWithCounts(ctx context.Context) ([]models.CohortSummary, error)
	FindByID(ctx context.Context, id int64) (*models.Cohort, error)
	Create(ctx context.Context, year int) (*models.Cohort, error)
	ToggleActive(ctx context.Context, id int64) (*models.Cohort, error)
	DeleteCascade(ctx context.Context, id int64) (*models.CohortDeletion, error)
}

// CohortService manages cohorts for the admin console and the public form.
type CohortService struct {
	repo   cohortRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewCohortService constructs a CohortService.
func NewCohortService(repo cohortRepository, cache *CacheService, logger *zap.Logger) *CohortService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CohortService{repo: repo, cache: cache, logger: logger}
}

// ListActive returns the cohorts offered on the registration form, newest first.
func (s *CohortService) ListActive(ctx context.Context) ([]models.Cohort, bool, error) {
	cohorts, hit, err := remember(ctx, s.cache, cacheKeyActiveCohorts, s.repo.ListActive)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to list cohorts")
	}
	return cohorts, hit, nil
}

// ListWithCounts returns every cohort with its student count.
func (s *CohortService) ListWithCounts(ctx context.Context) ([]models.CohortSummary, error) {
	cohorts, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list cohorts")
	}
	return cohorts, nil
}

// Get returns one cohort.
func (s *CohortService) Get(ctx context.Context, id int64) (*models.Cohort, error) {
	cohort, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Jahrgang nicht gefunden!")
		}
		return nil, appErrors.Internal(err, "failed to load cohort")
	}
	return cohort, nil
}

// ParseYear converts form input into a cohort year within the accepted bounds.
func ParseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Jahrgang ist erforderlich!")
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < models.MinCohortYear || year > models.MaxCohortYear {
		return 0, appErrors.Clone(appErrors.ErrValidation, "Bitte geben Sie eine gültige Jahreszahl ein!")
	}
	return year, nil
}

// Add creates an active cohort for the given year.
func (s *CohortService) Add(ctx context.Context, rawYear string) (*models.Cohort, error) {
	year, err := ParseYear(rawYear)
	if err != nil {
		return nil, err
	}

	cohort, err := s.repo.Create(ctx, year)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Dieser Jahrgang existiert bereits!")
		}
		return nil, appErrors.Internal(err, "Fehler beim Hinzufügen")
	}

	s.invalidate(ctx)
	return cohort, nil
}

// Toggle flips whether a cohort accepts registrations.
func (s *CohortService) Toggle(ctx context.Context, id int64) (*models.Cohort, error) {
	cohort, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Jahrgang nicht gefunden!")
		}
		return nil, appErrors.Internal(err, "failed to toggle cohort")
	}

	s.invalidate(ctx)
	return cohort, nil
}

// Delete removes a cohort and its students atomically.
func (s *CohortService) Delete(ctx context.Context, id int64) (*models.CohortDeletion, error) {
	res, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Jahrgang nicht gefunden!")
		}
		return nil, appErrors.Internal(err, "Fehler beim Löschen")
	}

	s.invalidate(ctx)
	_ = s.cache.Invalidate(ctx, cachePatternDashboard)
	s.logger.Info("cohort deleted", zap.Int64("cohort_id", id), zap.Int("year", res.Year), zap.Int("students", res.DeletedStudents))
	return res, nil
}

func (s *CohortService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, cachePatternCohorts)
}

// ToggleMessage is the confirmation shown after Toggle.
func ToggleMessage(c *models.Cohort) string {
	state := "deaktiviert"
	if c.Active {
		state = "aktiviert"
	}
	return fmt.Sprintf("Jahrgang %d wurde %s!", c.Year, state)
}

// DeleteMessage is the confirmation shown after Delete.
func DeleteMessage(d *models.CohortDeletion) string {
	if d.DeletedStudents > 0 {
		return fmt.Sprintf("Jahrgang %d und %d zugehörige Schüler erfolgreich gelöscht!", d.Year, d.DeletedStudents)
	}
	return fmt.Sprintf("Jahrgang %d erfolgreich gelöscht!", d.Year)
}
