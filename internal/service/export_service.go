package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/export"
)

// Export column headers in output order.
const (
	colCohort       = "Jahrgang"
	colFirstName    = "Vorname"
	colLastName     = "Nachname"
	colEmail        = "E-Mail"
	colConsent      = "Datenschutz erteilt"
	colConsentDate  = "Datenschutz Datum"
	colRegisteredAt = "Registriert am"

	exportTimeLayout = "2006-01-02 15:04:05"
	exportDateLayout = "2006-01-02"
)

var exportHeaders = []string{colCohort, colFirstName, colLastName, colEmail, colConsent, colConsentDate, colRegisteredAt}

type exportRepository interface {
	ExportRows(ctx context.Context, filter models.StudentFilter) ([]models.StudentExportRow, error)
}

type cohortLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Cohort, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders student registrations as CSV or PDF attachments.
type ExportService struct {
	students exportRepository
	cohorts  cohortLookup
	csv      csvRenderer
	pdf      pdfRenderer
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService. CSV output is semicolon separated.
func NewExportService(students exportRepository, cohorts cohortLookup, metrics *MetricsService, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter(';')
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		students: students,
		cohorts:  cohorts,
		csv:      csv,
		pdf:      pdf,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// StudentsCSV exports all students, or those of one cohort when cohortID is set. An existing cohort
// without students yields a header-only document with Rows == 0.
func (s *ExportService) StudentsCSV(ctx context.Context, cohortID *int64) (*dto.ExportFile, error) {
	dataset, cohort, err := s.dataset(ctx, cohortID)
	if err != nil {
		return nil, err
	}
	body, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render csv export")
	}
	return s.file(body, "csv", "text/csv; charset=utf-8", cohort, len(dataset.Rows)), nil
}

// StudentsPDF renders the same dataset as a printable roster.
func (s *ExportService) StudentsPDF(ctx context.Context, cohortID *int64) (*dto.ExportFile, error) {
	dataset, cohort, err := s.dataset(ctx, cohortID)
	if err != nil {
		return nil, err
	}
	title := "Abitur Anmeldungen"
	if cohort != nil {
		title = fmt.Sprintf("Abitur Anmeldungen Jahrgang %d", cohort.Year)
	}
	body, err := s.pdf.Render(dataset, title)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render pdf export")
	}
	return s.file(body, "pdf", "application/pdf", cohort, len(dataset.Rows)), nil
}

func (s *ExportService) dataset(ctx context.Context, cohortID *int64) (export.Dataset, *models.Cohort, error) {
	var cohort *models.Cohort
	if cohortID != nil {
		c, err := s.cohorts.FindByID(ctx, *cohortID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return export.Dataset{}, nil, appErrors.Clone(appErrors.ErrNotFound, "Jahrgang nicht gefunden!")
			}
			return export.Dataset{}, nil, appErrors.Internal(err, "failed to load cohort")
		}
		cohort = c
	}

	rows, err := s.students.ExportRows(ctx, models.StudentFilter{CohortID: cohortID})
	if err != nil {
		return export.Dataset{}, nil, appErrors.Internal(err, "Fehler beim Abrufen der Schülerdaten")
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, r := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			colCohort:       strconv.Itoa(r.CohortYear),
			colFirstName:    r.FirstName,
			colLastName:     r.LastName,
			colEmail:        r.Email,
			colConsent:      yesNo(r.ConsentGiven),
			colConsentDate:  r.ConsentTimestamp.Format(exportTimeLayout),
			colRegisteredAt: r.CreatedAt.Format(exportTimeLayout),
		})
	}
	return dataset, cohort, nil
}

func (s *ExportService) file(body []byte, ext, contentType string, cohort *models.Cohort, rows int) *dto.ExportFile {
	date := s.now().Format(exportDateLayout)
	out := &dto.ExportFile{ContentType: contentType, Body: body, Rows: rows}
	scope := "all"
	if cohort != nil {
		year := cohort.Year
		out.CohortYear = &year
		out.Filename = fmt.Sprintf("schueler_jahrgang_%d_%s.%s", year, date, ext)
		scope = "cohort"
	} else {
		out.Filename = fmt.Sprintf("schueler_export_%s.%s", date, ext)
	}
	s.metrics.RecordExport(ext, scope, rows)
	s.logger.Info("students exported", zap.String("format", ext), zap.String("scope", scope), zap.Int("rows", rows))
	return out
}

func yesNo(v bool) string {
	if v {
		return "Ja"
	}
	return "Nein"
}
