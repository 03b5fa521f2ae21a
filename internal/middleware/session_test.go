package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/logger"
)

const testCookie = "abitur_session"

type fakeValidator struct {
	sessions map[string]*models.Session
}

func (f fakeValidator) ValidateSession(_ context.Context, token string) (*models.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, appErrors.ErrUnauthorized
}

func newSessionRouter(v SessionValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/admin", RequireSession(v, testCookie))
	admin.GET("/dashboard", func(c *gin.Context) {
		session := SessionFromContext(c)
		adminID, _ := c.Get(logger.AdminIDKey)
		c.JSON(http.StatusOK, gin.H{"username": session.Username, "admin_id": adminID})
	})
	return r
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	r := newSessionRouter(fakeValidator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestRequireSessionRedirectsAndClearsInvalidCookie(t *testing.T) {
	r := newSessionRouter(fakeValidator{})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	cookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, testCookie+"="))
	assert.Contains(t, cookie, "Max-Age=0")
	assert.Contains(t, cookie, "SameSite=Strict")
}

func TestRequireSessionAttachesSession(t *testing.T) {
	r := newSessionRouter(fakeValidator{sessions: map[string]*models.Session{
		"valid": {ID: "jti", AdminID: 7, Username: "admin"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "valid"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"admin","admin_id":7}`, w.Body.String())
}

func TestOptionalSessionNeverBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v := fakeValidator{sessions: map[string]*models.Session{"valid": {AdminID: 1, Username: "admin"}}}
	r.GET("/admin", OptionalSession(v, testCookie), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": SessionFromContext(c) != nil})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "valid"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
}
