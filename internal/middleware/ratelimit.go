package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/funeral-directory/internal/config"
)

const maxTrackedClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SubmissionRateLimiter applies a token bucket per client IP to the given
// routes. Other routes pass through.
func SubmissionRateLimiter(cfg config.RateLimitConfig, routes ...string) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limited := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		limited[route] = struct{}{}
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)
	allow := func(key string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()

		if len(clients) >= maxTrackedClients {
			for k, cl := range clients {
				if now.Sub(cl.lastSeen) > cfg.Interval {
					delete(clients, k)
				}
			}
		}
		cl, ok := clients[key]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(perRequest), cfg.Requests)}
			clients[key] = cl
		}
		cl.lastSeen = now
		return cl.limiter.AllowN(now, 1)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := limited[c.Path()]; !ok {
				return next(c)
			}

			if !allow(c.RealIP(), time.Now()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"status":  "error",
					"message": "too many submissions, please try again later",
				})
			}

			return next(c)
		}
	}
}
