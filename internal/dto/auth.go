package dto

import "github.com/noah-isme/abitur-registration/internal/models"

// LoginRequest carries admin console credentials.
type LoginRequest struct {
	Username string `form:"benutzername" json:"benutzername" validate:"required"`
	Password string `form:"passwort" json:"passwort" validate:"required"`
}

// LoginResult is a started session together with the signed cookie value.
type LoginResult struct {
	Token   string          `json:"-"`
	Session *models.Session `json:"session"`
}

// SessionStatus answers GET /admin for clients that are not logged in.
type SessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	LoginPath     string `json:"login_path"`
}
