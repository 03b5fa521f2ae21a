package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, error)
	Stats(ctx context.Context) (*models.StudentStats, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// DashboardService backs the admin overview and single-record deletion.
type DashboardService struct {
	students studentRepository
	cache    *CacheService
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(students studentRepository, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{students: students, cache: cache, logger: logger}
}

// Overview lists every registration newest first together with aggregate stats.
// Only the stats are cached; the list always reflects the database.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	students, err := s.students.List(ctx, models.StudentFilter{})
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to list students")
	}

	stats, hit, err := remember(ctx, s.cache, cacheKeyDashboard, func(ctx context.Context) (models.StudentStats, error) {
		st, err := s.students.Stats(ctx)
		if err != nil {
			return models.StudentStats{}, err
		}
		return *st, nil
	})
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load stats")
	}

	return &dto.DashboardResponse{Students: students, Stats: stats}, hit, nil
}

// DeleteStudent removes a single registration.
func (s *DashboardService) DeleteStudent(ctx context.Context, id int64) error {
	deleted, err := s.students.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Eintrag nicht gefunden!")
		}
		return appErrors.Internal(err, "failed to delete student")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Eintrag nicht gefunden!")
	}

	_ = s.cache.Invalidate(ctx, cachePatternDashboard)
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}
