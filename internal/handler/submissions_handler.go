package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/middleware"
	"github.com/octobees/funeral-directory/internal/repository"
	"github.com/octobees/funeral-directory/internal/service"
)

// SubmissionsHandler exposes the public contact, report and removal forms.
type SubmissionsHandler struct {
	submissions *service.SubmissionService
}

// NewSubmissionsHandler constructs a SubmissionsHandler.
func NewSubmissionsHandler(submissions *service.SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{submissions: submissions}
}

// Contact handles POST /contact requests.
func (h *SubmissionsHandler) Contact(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "contact form is not valid JSON")
	}
	resp, err := h.submissions.SubmitContact(c.Request().Context(), req, middleware.RequestIDFromContext(c))
	if err != nil {
		return submissionError(c, err, "unable to send message")
	}
	return acknowledge(c, service.ContactAcknowledgement, resp)
}

// Report handles POST /reports requests.
func (h *SubmissionsHandler) Report(c echo.Context) error {
	var req dto.ReportRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "report form is not valid JSON")
	}
	resp, err := h.submissions.SubmitReport(c.Request().Context(), req, middleware.RequestIDFromContext(c))
	if err != nil {
		return submissionError(c, err, "unable to submit report")
	}
	return acknowledge(c, service.ReportAcknowledgement, resp)
}

// RemovalRequest handles POST /removal-request requests.
func (h *SubmissionsHandler) RemovalRequest(c echo.Context) error {
	var req dto.RemovalRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "removal request is not valid JSON")
	}
	resp, err := h.submissions.SubmitRemovalRequest(c.Request().Context(), req, middleware.RequestIDFromContext(c))
	if err != nil {
		return submissionError(c, err, "unable to submit removal request")
	}
	return acknowledge(c, service.RemovalAcknowledgement, resp)
}

// acknowledge answers 201 when the submission was stored and 202 when it
// could only be logged.
func acknowledge(c echo.Context, message string, resp dto.SubmissionResponse) error {
	if resp.Reference == "" {
		return Success(c, http.StatusAccepted, message, resp)
	}
	return Success(c, http.StatusCreated, message, resp)
}

func submissionError(c echo.Context, err error, fallback string) error {
	if vErr, ok := service.IsValidationError(err); ok {
		return Fail(c, http.StatusBadRequest, "validation failed", vErr.Fields)
	}
	if errors.Is(err, repository.ErrCompanyNotFound) {
		return Error(c, http.StatusNotFound, "company not found")
	}
	return Error(c, http.StatusInternalServerError, fallback)
}
