package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	"github.com/noah-isme/abitur-registration/internal/service"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/response"
)

type cohortService interface {
	ListWithCounts(ctx context.Context) ([]models.CohortSummary, error)
	Add(ctx context.Context, rawYear string) (*models.Cohort, error)
	Toggle(ctx context.Context, id int64) (*models.Cohort, error)
	Delete(ctx context.Context, id int64) (*models.CohortDeletion, error)
}

// CohortHandler manages cohorts in the admin console.
type CohortHandler struct {
	service cohortService
}

// NewCohortHandler constructs the handler.
func NewCohortHandler(service cohortService) *CohortHandler {
	return &CohortHandler{service: service}
}

// List godoc
// @Summary Cohorts with student counts
// @Tags Cohorts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/jahrgaenge [get]
func (h *CohortHandler) List(c *gin.Context) {
	cohorts, err := h.service.ListWithCounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cohorts)
}

// Add godoc
// @Summary Add a cohort
// @Tags Cohorts
// @Accept x-www-form-urlencoded
// @Produce json
// @Param jahrgang formData string true "Year"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/jahrgang/add [post]
func (h *CohortHandler) Add(c *gin.Context) {
	var req dto.CreateCohortRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Jahrgang ist erforderlich!"))
		return
	}

	cohort, err := h.service.Add(c.Request.Context(), req.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, cohort, fmt.Sprintf("Jahrgang %d erfolgreich hinzugefügt!", cohort.Year))
}

// Toggle godoc
// @Summary Activate or deactivate a cohort
// @Tags Cohorts
// @Produce json
// @Param id path int true "Cohort ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jahrgang/toggle/{id} [get]
func (h *CohortHandler) Toggle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	cohort, err := h.service.Toggle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	result := dto.CohortToggleResult{ID: cohort.ID, Year: cohort.Year, Active: cohort.Active}
	response.Message(c, http.StatusOK, result, service.ToggleMessage(cohort))
}

// Delete godoc
// @Summary Delete a cohort and its students
// @Tags Cohorts
// @Produce json
// @Param id path int true "Cohort ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jahrgang/delete/{id} [get]
func (h *CohortHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, res, service.DeleteMessage(res))
}
