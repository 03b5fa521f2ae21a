package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/password"
)

const testSecret = "test-secret-with-enough-entropy"

func newAuthFixture(t *testing.T, scheme password.Scheme, upgrade bool) (*AuthService, adminStore, *memorySessions) {
	t.Helper()
	store := adminStore{newMemoryStore()}
	store.addAdmin("admin", password.LegacyDigest("password"))
	sessions := &memorySessions{}
	svc := NewAuthService(store, sessions, password.New(scheme, 4), nil, nil, nil, AuthConfig{
		Secret:        testSecret,
		TTL:           time.Hour,
		Issuer:        "abitur-registration",
		UpgradeLegacy: upgrade,
	})
	return svc, store, sessions
}

func TestAuthVerifyBootstrapAdmin(t *testing.T) {
	svc, _, _ := newAuthFixture(t, password.SchemeSHA256, false)

	admin, err := svc.Verify(context.Background(), "admin", "password")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
}

func TestAuthVerifyFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture(t, password.SchemeSHA256, false)

	_, wrongPassword := svc.Verify(context.Background(), "admin", "wrong")
	_, wrongUser := svc.Verify(context.Background(), "nobody", "password")

	require.Error(t, wrongPassword)
	require.Error(t, wrongUser)
	assert.ErrorIs(t, wrongPassword, appErrors.ErrInvalidCredentials)
	assert.Equal(t, appErrors.FromError(wrongPassword).Message, appErrors.FromError(wrongUser).Message)
	assert.Equal(t, appErrors.FromError(wrongPassword).Status, appErrors.FromError(wrongUser).Status)
}

func TestAuthVerifyUsernameIsExact(t *testing.T) {
	svc, _, _ := newAuthFixture(t, password.SchemeSHA256, false)

	_, err := svc.Verify(context.Background(), "Admin", "password")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthVerifyUpgradesLegacyHash(t *testing.T) {
	svc, store, _ := newAuthFixture(t, password.SchemeBcrypt, true)

	_, err := svc.Verify(context.Background(), "admin", "password")
	require.NoError(t, err)

	stored, err := store.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))

	_, err = svc.Verify(context.Background(), "admin", "password")
	assert.NoError(t, err)
}

func TestAuthVerifyKeepsLegacyHashWithoutUpgrade(t *testing.T) {
	svc, store, _ := newAuthFixture(t, password.SchemeBcrypt, false)

	_, err := svc.Verify(context.Background(), "admin", "password")
	require.NoError(t, err)

	stored, _ := store.FindByUsername(context.Background(), "admin")
	assert.Equal(t, password.LegacyDigest("password"), stored.PasswordHash)
}

func TestAuthLoginRequiresFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t, password.SchemeSHA256, false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthSessionRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture(t, password.SchemeSHA256, false)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "password"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.Session.ID)

	session, err := svc.ValidateSession(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session.AdminID, session.AdminID)
	assert.Equal(t, "admin", session.Username)
	assert.Equal(t, res.Session.ID, session.ID)
}

func TestAuthValidateSessionRejectsTampering(t *testing.T) {
	svc, _, _ := newAuthFixture(t, password.SchemeSHA256, false)
	ctx := context.Background()

	_, err := svc.ValidateSession(ctx, "")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	_, err = svc.ValidateSession(ctx, "not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
		AdminID:  1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			Issuer:    "abitur-registration",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateSession(ctx, signed)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, models.SessionClaims{AdminID: 1, RegisteredClaims: jwt.RegisteredClaims{ID: "jti"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateSession(ctx, unsigned)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthValidateSessionExpired(t *testing.T) {
	svc, store, _ := newAuthFixture(t, password.SchemeSHA256, false)
	admin, _ := store.FindByUsername(context.Background(), "admin")

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	res, err := svc.StartSession(admin)
	require.NoError(t, err)
	svc.now = time.Now

	_, err = svc.ValidateSession(context.Background(), res.Token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthEndSessionRevokes(t *testing.T) {
	svc, _, sessions := newAuthFixture(t, password.SchemeSHA256, false)
	ctx := context.Background()

	res, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "password"})
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, res.Session))
	ttl, ok := sessions.revoked[res.Session.ID]
	require.True(t, ok)
	assert.True(t, ttl > 0 && ttl <= time.Hour)

	_, err = svc.ValidateSession(ctx, res.Token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
