package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/repository"
	"github.com/octobees/funeral-directory/internal/service"
)

// AdminHandler exposes moderation endpoints for administrators.
type AdminHandler struct {
	submissions *service.SubmissionService
	directory   *service.DirectoryService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(submissions *service.SubmissionService, directory *service.DirectoryService) *AdminHandler {
	return &AdminHandler{submissions: submissions, directory: directory}
}

type reloadResponse struct {
	Companies int    `json:"companies"`
	Counties  int    `json:"counties"`
	LoadedAt  string `json:"loaded_at"`
}

// ListReports handles GET /admin/reports requests.
func (h *AdminHandler) ListReports(c echo.Context) error {
	reports, err := h.submissions.ListReports(c.Request().Context(), statusFilter(c))
	if err != nil {
		return moderationError(c, err, "failed to list reports")
	}
	return Success(c, http.StatusOK, "reports retrieved", reports)
}

// ListRemovalRequests handles GET /admin/removal-requests requests.
func (h *AdminHandler) ListRemovalRequests(c echo.Context) error {
	requests, err := h.submissions.ListRemovalRequests(c.Request().Context(), statusFilter(c))
	if err != nil {
		return moderationError(c, err, "failed to list removal requests")
	}
	return Success(c, http.StatusOK, "removal requests retrieved", requests)
}

// ListContactMessages handles GET /admin/contact-messages requests.
func (h *AdminHandler) ListContactMessages(c echo.Context) error {
	messages, err := h.submissions.ListContactMessages(c.Request().Context(), statusFilter(c))
	if err != nil {
		return moderationError(c, err, "failed to list contact messages")
	}
	return Success(c, http.StatusOK, "contact messages retrieved", messages)
}

// UpdateReport handles PATCH /admin/reports/:id requests.
func (h *AdminHandler) UpdateReport(c echo.Context) error {
	return h.updateStatus(c, "report", h.submissions.UpdateReportStatus)
}

// UpdateRemovalRequest handles PATCH /admin/removal-requests/:id requests.
func (h *AdminHandler) UpdateRemovalRequest(c echo.Context) error {
	return h.updateStatus(c, "removal request", h.submissions.UpdateRemovalRequestStatus)
}

// UpdateContactMessage handles PATCH /admin/contact-messages/:id requests.
func (h *AdminHandler) UpdateContactMessage(c echo.Context) error {
	return h.updateStatus(c, "contact message", h.submissions.UpdateContactMessageStatus)
}

func (h *AdminHandler) updateStatus(c echo.Context, noun string, update func(context.Context, uuid.UUID, dto.StatusUpdateRequest) error) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return Error(c, http.StatusBadRequest, "submission id must be a UUID")
	}

	var req dto.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "status update is not valid JSON")
	}

	if err := update(c.Request().Context(), id, req); err != nil {
		return moderationError(c, err, "failed to update "+noun)
	}
	return Success(c, http.StatusOK, noun+" updated", nil)
}

// ReloadDirectory handles POST /admin/directory/reload requests.
func (h *AdminHandler) ReloadDirectory(c echo.Context) error {
	snap, err := h.directory.Reload(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to reload directory")
	}
	return Success(c, http.StatusOK, "directory reloaded", reloadResponse{
		Companies: len(snap.Companies),
		Counties:  len(snap.Counties),
		LoadedAt:  snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}

func statusFilter(c echo.Context) string {
	return strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
}

func moderationError(c echo.Context, err error, fallback string) error {
	if vErr, ok := service.IsValidationError(err); ok {
		return Fail(c, http.StatusBadRequest, "validation failed", vErr.Fields)
	}
	switch {
	case errors.Is(err, repository.ErrSubmissionNotFound):
		return Error(c, http.StatusNotFound, "submission not found")
	case errors.Is(err, repository.ErrTableMissing):
		return Error(c, http.StatusServiceUnavailable, "submissions storage is not initialised")
	}
	return Error(c, http.StatusInternalServerError, fallback)
}
