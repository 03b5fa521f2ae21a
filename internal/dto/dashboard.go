package dto

import "github.com/noah-isme/abitur-registration/internal/models"

// DashboardResponse is the admin overview: every registration plus aggregate counts.
type DashboardResponse struct {
	Students []models.StudentDetail `json:"students"`
	Stats    models.StudentStats    `json:"stats"`
}
