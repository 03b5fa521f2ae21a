package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed payload carried in the admin session cookie.
type SessionClaims struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is the authenticated admin identity of one client, passed explicitly to services.
type Session struct {
	ID        string    `json:"-"`
	AdminID   int64     `json:"admin_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
