package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/abitur-registration/internal/dto"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
	"github.com/noah-isme/abitur-registration/pkg/response"
)

type adminService interface {
	List(ctx context.Context) ([]dto.AdminSummary, error)
	Add(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminSummary, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (*dto.AdminSummary, error)
	Delete(ctx context.Context, id int64, session *models.Session) (*dto.AdminSummary, error)
}

// AdminUserHandler manages console accounts.
type AdminUserHandler struct {
	service adminService
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(service adminService) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

// List godoc
// @Summary Admin accounts
// @Tags Admins
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/benutzer [get]
func (h *AdminUserHandler) List(c *gin.Context) {
	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admins)
}

// Add godoc
// @Summary Create an admin account
// @Tags Admins
// @Accept x-www-form-urlencoded
// @Produce json
// @Param benutzername formData string true "Username"
// @Param passwort formData string true "Password"
// @Param passwort_wiederholen formData string true "Password confirmation"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/benutzer/add [post]
func (h *AdminUserHandler) Add(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Alle Felder müssen ausgefüllt werden!"))
		return
	}
	admin, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, admin, fmt.Sprintf("Benutzer %q erfolgreich erstellt!", admin.Username))
}

// ChangePassword godoc
// @Summary Rotate an admin password
// @Tags Admins
// @Accept x-www-form-urlencoded
// @Produce json
// @Param benutzer_id formData string true "Admin ID"
// @Param altes_passwort formData string true "Current password"
// @Param neues_passwort formData string true "New password"
// @Param neues_passwort_wiederholen formData string true "New password confirmation"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/benutzer/change-password [post]
func (h *AdminUserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Alle Felder müssen ausgefüllt werden!"))
		return
	}
	admin, err := h.service.ChangePassword(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, admin, fmt.Sprintf("Passwort für %q erfolgreich geändert!", admin.Username))
}

// Delete godoc
// @Summary Delete an admin account
// @Tags Admins
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/benutzer/delete/{id} [get]
func (h *AdminUserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	admin, err := h.service.Delete(c.Request.Context(), id, sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, admin, fmt.Sprintf("Benutzer %q erfolgreich gelöscht!", admin.Username))
}
