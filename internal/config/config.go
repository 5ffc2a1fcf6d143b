package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	Port                 string
	TokenTTL             time.Duration
	RateLimitSubmissions RateLimitConfig
	DirectoryRefresh     time.Duration
	RedisURL             string
	DirectoryCacheTTL    time.Duration
	NotifyWorkerURL      string
	PhoneRegion          string
	LogLevel             string
	LogFormat            string
	CORSAllowOrigins     []string
	AdminEmail           string
	AdminPassword        string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		Port:              getEnv("PORT", "8080"),
		TokenTTL:          parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		RedisURL:          os.Getenv("REDIS_URL"),
		DirectoryCacheTTL: parseDuration(getEnv("DIRECTORY_CACHE_TTL", "10m"), 10*time.Minute),
		NotifyWorkerURL:   strings.TrimRight(os.Getenv("NOTIFY_WORKER_URL"), "/"),
		PhoneRegion:       strings.ToUpper(getEnv("PHONE_REGION", "RO")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		CORSAllowOrigins:  splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SUBMISSIONS", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMISSIONS value: %w", err)
	}
	cfg.RateLimitSubmissions = rl

	refresh, err := time.ParseDuration(getEnv("DIRECTORY_REFRESH_INTERVAL", "0s"))
	if err != nil || refresh < 0 {
		return nil, fmt.Errorf("invalid DIRECTORY_REFRESH_INTERVAL value: %q", os.Getenv("DIRECTORY_REFRESH_INTERVAL"))
	}
	cfg.DirectoryRefresh = refresh

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
