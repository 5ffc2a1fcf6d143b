package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/auth"
	"github.com/octobees/funeral-directory/internal/config"
	"github.com/octobees/funeral-directory/internal/handler"
	"github.com/octobees/funeral-directory/internal/logger"
	middlewarepkg "github.com/octobees/funeral-directory/internal/middleware"
)

// Submission routes share one rate limiter per client.
var submissionRoutes = []string{"/contact", "/reports", "/removal-request"}

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Companies   *handler.CompaniesHandler
	Submissions *handler.SubmissionsHandler
	Admin       *handler.AdminHandler
	Metrics     http.Handler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, log *logger.Logger, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	if handlers.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(handlers.Metrics))
	}

	e.POST("/auth/login", handlers.Auth.Login)

	e.GET("/companies", handlers.Companies.List)
	e.GET("/companies/:slug", handlers.Companies.Get)
	e.GET("/counties", handlers.Companies.Counties)
	e.GET("/cities", handlers.Companies.Cities)
	e.GET("/map", handlers.Companies.Map)

	limiter := middlewarepkg.SubmissionRateLimiter(cfg.RateLimitSubmissions, submissionRoutes...)
	e.POST("/contact", handlers.Submissions.Contact, limiter)
	e.POST("/reports", handlers.Submissions.Report, limiter)
	e.POST("/removal-request", handlers.Submissions.RemovalRequest, limiter)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager, log))

	admin := secured.Group("/admin", middlewarepkg.RequireRole(auth.RoleAdmin))
	admin.GET("/reports", handlers.Admin.ListReports)
	admin.PATCH("/reports/:id", handlers.Admin.UpdateReport)
	admin.GET("/removal-requests", handlers.Admin.ListRemovalRequests)
	admin.PATCH("/removal-requests/:id", handlers.Admin.UpdateRemovalRequest)
	admin.GET("/contact-messages", handlers.Admin.ListContactMessages)
	admin.PATCH("/contact-messages/:id", handlers.Admin.UpdateContactMessage)
	admin.POST("/directory/reload", handlers.Admin.ReloadDirectory)
}
