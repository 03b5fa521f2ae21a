package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	"github.com/noah-isme/abitur-registration/internal/repository"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/password"
)

type adminRepository interface {
	FindByID(ctx context.Context, id int64) (*models.AdminAccount, error)
	List(ctx context.Context) ([]models.AdminAccount, error)
	Create(ctx context.Context, admin *models.AdminAccount) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	DeleteWithGuard(ctx context.Context, id int64, guard func(total int) error) error
}

// AdminService manages console accounts.
type AdminService struct {
	repo      adminRepository
	hasher    *password.Hasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(repo adminRepository, hasher *password.Hasher, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if hasher == nil {
		hasher = password.New(password.SchemeSHA256, 0)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, hasher: hasher, validator: validate, logger: logger}
}

// List returns all accounts without their hashes.
func (s *AdminService) List(ctx context.Context) ([]dto.AdminSummary, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list admins")
	}
	out := make([]dto.AdminSummary, 0, len(admins))
	for _, a := range admins {
		out = append(out, dto.AdminSummary{ID: a.ID, Username: a.Username})
	}
	return out, nil
}

// Add creates an account after checking presence, confirmation and minimum lengths in that order.
func (s *AdminService) Add(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Alle Felder müssen ausgefüllt werden!")
	}
	if req.Password != req.PasswordConfirm {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Passwörter stimmen nicht überein!")
	}
	if utf8.RuneCountInString(req.Password) < models.MinPasswordLength {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Passwort muss mindestens 6 Zeichen lang sein!")
	}
	if utf8.RuneCountInString(req.Username) < models.MinUsernameLength {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Benutzername muss mindestens 3 Zeichen lang sein!")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Internal(err, "Fehler beim Erstellen des Benutzers")
	}

	admin := &models.AdminAccount{Username: req.Username, PasswordHash: hash}
	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Benutzername bereits vergeben!")
		}
		return nil, appErrors.Internal(err, "Fehler beim Erstellen des Benutzers")
	}

	s.logger.Info("admin created", zap.Int64("target_admin_id", admin.ID), zap.String("username", admin.Username))
	return &dto.AdminSummary{ID: admin.ID, Username: admin.Username}, nil
}

// ChangePassword rotates the password of the account named in the request after checking the old one.
func (s *AdminService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (*dto.AdminSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Alle Felder müssen ausgefüllt werden!")
	}
	if req.NewPassword != req.NewPasswordConfirm {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Neue Passwörter stimmen nicht überein!")
	}
	if utf8.RuneCountInString(req.NewPassword) < models.MinPasswordLength {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Neues Passwort muss mindestens 6 Zeichen lang sein!")
	}

	id, err := strconv.ParseInt(strings.TrimSpace(req.AdminID), 10, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Ungültige Benutzer-ID!")
	}

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "Fehler beim Ändern des Passworts")
	}
	if admin == nil || !s.hasher.Verify(req.OldPassword, admin.PasswordHash) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Altes Passwort ist falsch!")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, appErrors.Internal(err, "Fehler beim Ändern des Passworts")
	}
	if err := s.repo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Altes Passwort ist falsch!")
		}
		return nil, appErrors.Internal(err, "Fehler beim Ändern des Passworts")
	}

	s.logger.Info("admin password changed", zap.Int64("target_admin_id", admin.ID))
	return &dto.AdminSummary{ID: admin.ID, Username: admin.Username}, nil
}

// Delete removes an account. The last remaining account and the caller's own account are protected.
func (s *AdminService) Delete(ctx context.Context, id int64, session *models.Session) (*dto.AdminSummary, error) {
	if session == nil {
		return nil, appErrors.ErrUnauthorized
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "Fehler beim Löschen des Benutzers")
	}

	err = s.repo.DeleteWithGuard(ctx, id, func(total int) error {
		if total <= 1 {
			return appErrors.Clone(appErrors.ErrInvariant, "Der letzte Admin-Benutzer kann nicht gelöscht werden!")
		}
		if id == session.AdminID {
			return appErrors.Clone(appErrors.ErrForbidden, "Sie können sich nicht selbst löschen!")
		}
		return nil
	})
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Benutzer nicht gefunden!")
		}
		return nil, appErrors.Internal(err, "Fehler beim Löschen des Benutzers")
	}

	summary := &dto.AdminSummary{ID: id}
	if target != nil {
		summary.Username = target.Username
	}
	s.logger.Info("admin deleted", zap.Int64("target_admin_id", id), zap.Int64("by_admin_id", session.AdminID))
	return summary, nil
}
