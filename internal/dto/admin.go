package dto

// CreateAdminRequest creates a console account.
type CreateAdminRequest struct {
	Username        string `form:"benutzername" json:"benutzername" validate:"required"`
	Password        string `form:"passwort" json:"passwort" validate:"required"`
	PasswordConfirm string `form:"passwort_wiederholen" json:"passwort_wiederholen" validate:"required"`
}

// ChangePasswordRequest rotates the password of the account identified by AdminID.
type ChangePasswordRequest struct {
	AdminID            string `form:"benutzer_id" json:"benutzer_id" validate:"required"`
	OldPassword        string `form:"altes_passwort" json:"altes_passwort" validate:"required"`
	NewPassword        string `form:"neues_passwort" json:"neues_passwort" validate:"required"`
	NewPasswordConfirm string `form:"neues_passwort_wiederholen" json:"neues_passwort_wiederholen" validate:"required"`
}

// AdminSummary is the public view of an account.
type AdminSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
