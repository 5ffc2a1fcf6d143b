package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/dto"
	"github.com/octobees/funeral-directory/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "login form is not valid JSON")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "enter the moderator email and password")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return Error(c, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, service.ErrEmptyCredentials):
			return Error(c, http.StatusBadRequest, "enter the moderator email and password")
		default:
			return Error(c, http.StatusInternalServerError, "sign-in is unavailable, try again later")
		}
	}

	return Success(c, http.StatusOK, "signed in", dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   h.authService.TokenTTLSeconds(),
	})
}
