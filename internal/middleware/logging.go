package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/funeral-directory/internal/logger"
)

// Logging writes one structured entry per HTTP request. Server errors are
// logged at error level, client errors at warn.
func Logging(log *logger.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			ctx := log.WithFields(req.Context(), map[string]any{
				"method":     req.Method,
				"path":       req.URL.Path,
				"route":      c.Path(),
				"status":     status,
				"latency_ms": latency.Milliseconds(),
				"remote_ip":  c.RealIP(),
			})

			switch {
			case status >= http.StatusInternalServerError:
				log.Error(ctx, "request failed", err)
			case status >= http.StatusBadRequest:
				log.Warn(ctx, "request rejected", err)
			default:
				log.Info(ctx, "request completed")
			}

			return err
		}
	}
}
