package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/password"
)

type authAdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type sessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// AuthConfig defines session signing and password upgrade behaviour.
type AuthConfig struct {
	Secret        string
	TTL           time.Duration
	Issuer        string
	UpgradeLegacy bool
}

// AuthService verifies admin credentials and issues, validates and ends sessions.
type AuthService struct {
	repo      authAdminRepository
	sessions  sessionStore
	hasher    *password.Hasher
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authAdminRepository, sessions sessionStore, hasher *password.Hasher, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if hasher == nil {
		hasher = password.New(password.SchemeSHA256, 0)
	}
	if config.TTL <= 0 {
		config.TTL = 12 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		hasher:    hasher,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
		now:       time.Now,
	}
}

// Verify looks the account up by exact username and checks the password. Unknown users and wrong
// passwords fail identically.
func (s *AuthService) Verify(ctx context.Context, username, plain string) (*models.AdminAccount, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Ungültige Anmeldedaten!")
		}
		return nil, appErrors.Internal(err, "failed to fetch admin")
	}
	if !s.hasher.Verify(plain, admin.PasswordHash) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Ungültige Anmeldedaten!")
	}

	if s.config.UpgradeLegacy && s.hasher.NeedsRehash(admin.PasswordHash) {
		s.upgradeHash(ctx, admin, plain)
	}
	return admin, nil
}

func (s *AuthService) upgradeHash(ctx context.Context, admin *models.AdminAccount, plain string) {
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		s.logger.Warn("failed to rehash legacy password", zap.Int64("admin_id", admin.ID), zap.Error(err))
		return
	}
	if err := s.repo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		s.logger.Warn("failed to store upgraded password hash", zap.Int64("admin_id", admin.ID), zap.Error(err))
		return
	}
	admin.PasswordHash = hash
	s.logger.Info("upgraded legacy password hash", zap.Int64("admin_id", admin.ID))
}

// Login verifies credentials and starts a session.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Benutzername und Passwort erforderlich!")
	}

	admin, err := s.Verify(ctx, req.Username, req.Password)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrInvalidCredentials.Code) {
			s.metrics.RecordLogin(false)
			s.logger.Info("admin login rejected", zap.String("username", req.Username))
		}
		return nil, err
	}
	s.metrics.RecordLogin(true)

	return s.StartSession(admin)
}

// StartSession signs a session token for the account.
func (s *AuthService) StartSession(admin *models.AdminAccount) (*dto.LoginResult, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.config.TTL)
	claims := models.SessionClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign session")
	}

	return &dto.LoginResult{
		Token: token,
		Session: &models.Session{
			ID:        claims.ID,
			AdminID:   admin.ID,
			Username:  admin.Username,
			ExpiresAt: expiresAt,
		},
	}, nil
}

// ValidateSession parses a session token and rejects tampered, expired and revoked sessions.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}

	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "session invalid")
	}
	if claims.ID == "" || claims.AdminID == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session invalid")
	}

	if s.sessions != nil {
		revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to check session")
		}
		if revoked {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session ended")
		}
	}

	return &models.Session{
		ID:        claims.ID,
		AdminID:   claims.AdminID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// EndSession revokes the session for the rest of its lifetime. The cookie is cleared by the caller.
func (s *AuthService) EndSession(ctx context.Context, session *models.Session) error {
	if session == nil || s.sessions == nil {
		return nil
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.sessions.Revoke(ctx, session.ID, ttl); err != nil {
		return appErrors.Internal(err, "failed to end session")
	}
	return nil
}
