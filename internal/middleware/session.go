package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/abitur-registration/internal/models"
	"github.com/noah-isme/abitur-registration/pkg/logger"
)

// ContextSessionKey is the gin context key storing the authenticated *models.Session.
const ContextSessionKey = "session"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin"

// SessionValidator resolves a cookie value into a session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.Session, error)
}

// RequireSession only lets requests with a valid session cookie through. Everything else is
// redirected to the login page; a stale cookie is cleared on the way.
func RequireSession(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		session, err := validator.ValidateSession(c.Request.Context(), token)
		if err != nil {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		setSession(c, session)
		c.Next()
	}
}

// OptionalSession attaches the session when the cookie is valid but never blocks.
func OptionalSession(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if session, err := validator.ValidateSession(c.Request.Context(), token); err == nil {
				setSession(c, session)
			}
		}
		c.Next()
	}
}

func setSession(c *gin.Context, session *models.Session) {
	c.Set(ContextSessionKey, session)
	c.Set(logger.AdminIDKey, session.AdminID)
}

// SessionFromContext returns the session placed by RequireSession or OptionalSession.
func SessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}
