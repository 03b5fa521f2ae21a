package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	"github.com/noah-isme/abitur-registration/internal/repository"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
)

type registrationRepository interface {
	Create(ctx context.Context, rec *models.StudentRecord) error
}

// RegistrationService accepts public sign-ups.
type RegistrationService struct {
	repo      registrationRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(repo registrationRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Submit validates the form and stores one student record.
//
// Required fields are checked before consent. Once the consent value is present the record is
// always stored with consent_given = true; the submitted value itself is not persisted.
func (s *RegistrationService) Submit(ctx context.Context, req dto.RegistrationRequest) (*models.StudentRecord, error) {
	rec, err := s.submit(ctx, req)
	if err != nil {
		s.metrics.RecordRegistration(appErrors.FromError(err).Code)
		return nil, err
	}
	s.metrics.RecordRegistration("accepted")
	return rec, nil
}

func (s *RegistrationService) submit(ctx context.Context, req dto.RegistrationRequest) (*models.StudentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Alle Felder müssen ausgefüllt werden!")
	}
	if req.Consent == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Die Datenschutzerklärung muss akzeptiert werden!")
	}

	cohortID, err := strconv.ParseInt(strings.TrimSpace(req.CohortID), 10, 64)
	if err != nil || cohortID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Bitte wählen Sie einen gültigen Jahrgang!")
	}

	rec := &models.StudentRecord{
		CohortID:     cohortID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		ConsentGiven: true,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Jahrgang nicht gefunden!")
		}
		return nil, appErrors.Internal(err, "Fehler beim Speichern")
	}

	_ = s.cache.Invalidate(ctx, cachePatternDashboard)
	s.logger.Info("student registered", zap.Int64("student_id", rec.ID), zap.Int64("cohort_id", rec.CohortID))
	return rec, nil
}
