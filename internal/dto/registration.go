package dto

// RegistrationRequest is the public sign-up form. CohortID stays a string so an empty
// selection is reported as a missing field rather than a parse failure.
type RegistrationRequest struct {
	CohortID  string `form:"jahrgang_id" json:"jahrgang_id" validate:"required"`
	FirstName string `form:"vorname" json:"vorname" validate:"required"`
	LastName  string `form:"nachname" json:"nachname" validate:"required"`
	Email     string `form:"email" json:"email" validate:"required"`
	Consent   string `form:"datenschutz_einwilligung" json:"datenschutz_einwilligung"`
}

// PrivacyNotice is the static data protection text shown next to the form.
type PrivacyNotice struct {
	Title      string   `json:"title"`
	Controller string   `json:"controller"`
	Purpose    string   `json:"purpose"`
	Data       []string `json:"data"`
	Retention  string   `json:"retention"`
	Rights     []string `json:"rights"`
}
