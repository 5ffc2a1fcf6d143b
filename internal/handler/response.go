package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// APIResponse wraps every directory reply. Status is "success" or "error";
// Data holds the page, detail or acknowledgement, or the rejected fields of
// a failed submission.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success answers with data, defaulting to 200.
func Success(c echo.Context, status int, message string, data any) error {
	return respond(c, defaultStatus(status, http.StatusOK), statusSuccess, message, data)
}

// Error answers with a message only, defaulting to 500.
func Error(c echo.Context, status int, message string) error {
	return Fail(c, status, message, nil)
}

// Fail is Error with details, such as per-field validation messages.
func Fail(c echo.Context, status int, message string, data any) error {
	return respond(c, defaultStatus(status, http.StatusInternalServerError), statusError, message, data)
}

func respond(c echo.Context, status int, outcome, message string, data any) error {
	return c.JSON(status, APIResponse{Status: outcome, Message: message, Data: data})
}

func defaultStatus(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}
