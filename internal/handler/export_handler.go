package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/abitur-registration/internal/dto"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/response"
)

type exportService interface {
	StudentsCSV(ctx context.Context, cohortID *int64) (*dto.ExportFile, error)
	StudentsPDF(ctx context.Context, cohortID *int64) (*dto.ExportFile, error)
}

// ExportHandler streams student exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// CSV godoc
// @Summary Export registrations as CSV
// @Description Semicolon separated. With an id only that cohort is exported.
// @Tags Export
// @Produce text/csv
// @Param jahrgang_id path int false "Cohort ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /admin/export/csv/{jahrgang_id} [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	h.serve(c, h.service.StudentsCSV)
}

// PDF godoc
// @Summary Export registrations as PDF roster
// @Tags Export
// @Produce application/pdf
// @Param jahrgang_id path int false "Cohort ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /admin/export/pdf/{jahrgang_id} [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.serve(c, h.service.StudentsPDF)
}

func (h *ExportHandler) serve(c *gin.Context, render func(ctx context.Context, cohortID *int64) (*dto.ExportFile, error)) {
	var cohortID *int64
	if c.Param("jahrgang_id") != "" {
		id, err := pathID(c, "jahrgang_id")
		if err != nil {
			response.Error(c, err)
			return
		}
		cohortID = &id
	}

	file, err := render(c.Request.Context(), cohortID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if cohortID != nil && file.Rows == 0 {
		year := ""
		if file.CohortYear != nil {
			year = strconv.Itoa(*file.CohortYear)
		}
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Keine Schüler im Jahrgang %s gefunden!", year)))
		return
	}

	c.Header("X-Export-Rows", strconv.Itoa(file.Rows))
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}
