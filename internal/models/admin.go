package models

// AdminAccount is a console login. PasswordHash is either a legacy SHA-256 hex digest or a bcrypt hash.
type AdminAccount struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"benutzername" json:"username"`
	PasswordHash string `db:"passwort_hash" json:"-"`
}

// Admin account constraints.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)
