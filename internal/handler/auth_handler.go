package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)
	EndSession(ctx context.Context, session *models.Session) error
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	service authService
	cookie  CookieConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie}
}

// LoginPage godoc
// @Summary Login state
// @Description Redirects to the dashboard when a valid session cookie is present.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 302
// @Router /admin [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if sessionFromContext(c) != nil {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	response.JSON(c, http.StatusOK, dto.SessionStatus{Authenticated: false, LoginPath: "/admin/login"})
}

// Login godoc
// @Summary Authenticate admin
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Produce json
// @Param benutzername formData string true "Username"
// @Param passwort formData string true "Password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Benutzername und Passwort erforderlich!"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, res.Token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	response.JSON(c, http.StatusOK, res)
}

// Logout godoc
// @Summary End the admin session
// @Tags Authentication
// @Success 302
// @Router /admin/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.EndSession(c.Request.Context(), sessionFromContext(c)); err != nil {
		_ = c.Error(err)
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/")
}
