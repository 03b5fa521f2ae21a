package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/middleware"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/response"
)

type activeCohortLister interface {
	ListActive(ctx context.Context) ([]models.Cohort, bool, error)
}

type registrationService interface {
	Submit(ctx context.Context, req dto.RegistrationRequest) (*models.StudentRecord, error)
}

var privacyNotice = dto.PrivacyNotice{
	Title:      "Datenschutzerklärung",
	Controller: "Schulleitung und Abiturorganisation der Schule",
	Purpose:    "Organisation der Abiturveranstaltungen und Kontaktaufnahme mit den Teilnehmenden des Jahrgangs.",
	Data:       []string{"Vorname", "Nachname", "E-Mail-Adresse", "Abiturjahrgang", "Zeitpunkt der Einwilligung"},
	Retention:  "Die Daten werden gelöscht, sobald der Jahrgang aus dem System entfernt wird.",
	Rights:     []string{"Auskunft", "Berichtigung", "Löschung", "Widerruf der Einwilligung"},
}

// PublicHandler serves the registration form endpoints.
type PublicHandler struct {
	cohorts      activeCohortLister
	registration registrationService
}

// NewPublicHandler constructs the handler.
func NewPublicHandler(cohorts activeCohortLister, registration registrationService) *PublicHandler {
	return &PublicHandler{cohorts: cohorts, registration: registration}
}

// Home godoc
// @Summary Cohorts open for registration
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *PublicHandler) Home(c *gin.Context) {
	cohorts, hit, err := h.cohorts.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, cohorts, middleware.ExtractMeta(c))
}

// Privacy godoc
// @Summary Data protection notice
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /datenschutz [get]
func (h *PublicHandler) Privacy(c *gin.Context) {
	response.JSON(c, http.StatusOK, privacyNotice)
}

// Submit godoc
// @Summary Register a student
// @Tags Registration
// @Accept x-www-form-urlencoded
// @Produce json
// @Param jahrgang_id formData string true "Cohort ID"
// @Param vorname formData string true "First name"
// @Param nachname formData string true "Last name"
// @Param email formData string true "E-mail"
// @Param datenschutz_einwilligung formData string true "Consent"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submit [post]
func (h *PublicHandler) Submit(c *gin.Context) {
	var req dto.RegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Alle Felder müssen ausgefüllt werden!"))
		return
	}

	rec, err := h.registration.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, rec, "Daten erfolgreich gespeichert!")
}
