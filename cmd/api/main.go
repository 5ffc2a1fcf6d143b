package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/funeral-directory/internal/auth"
	"github.com/octobees/funeral-directory/internal/cache"
	"github.com/octobees/funeral-directory/internal/config"
	"github.com/octobees/funeral-directory/internal/database"
	"github.com/octobees/funeral-directory/internal/handler"
	"github.com/octobees/funeral-directory/internal/logger"
	"github.com/octobees/funeral-directory/internal/metrics"
	middlewarepkg "github.com/octobees/funeral-directory/internal/middleware"
	"github.com/octobees/funeral-directory/internal/repository"
	"github.com/octobees/funeral-directory/internal/router"
	"github.com/octobees/funeral-directory/internal/service"
)

const serviceName = "funeral-directory-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: serviceName}).Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	ctx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, "failed to connect database", err)
		os.Exit(1)
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)
	countiesRepo := repository.NewPGXCountiesRepository(pool)
	submissionsRepo := repository.NewPGXSubmissionsRepository(pool)

	directoryOpts := []service.DirectoryOption{
		service.WithDirectoryLogger(log),
		service.WithDirectoryMetrics(appMetrics),
		service.WithPhoneRegion(cfg.PhoneRegion),
	}
	if cfg.RedisURL != "" {
		snapshotCache, err := cache.New(ctx, cfg.RedisURL, cfg.DirectoryCacheTTL)
		if err != nil {
			log.Warn(ctx, "redis unavailable, directory cache disabled", err)
		} else {
			defer snapshotCache.Close()
			directoryOpts = append(directoryOpts, service.WithSnapshotCache(snapshotCache))
		}
	}

	var notifier *service.Notifier
	if cfg.NotifyWorkerURL != "" {
		worker, err := service.NewWorkerClient(nil, cfg.NotifyWorkerURL)
		if err != nil {
			log.Warn(ctx, "notification worker disabled", err)
		} else {
			notifier = service.NewNotifier(worker, log)
		}
	}

	authService := service.NewAuthService(usersRepo, jwtManager)
	directoryService := service.NewDirectoryService(companiesRepo, countiesRepo, directoryOpts...)
	submissionService := service.NewSubmissionService(submissionsRepo, directoryService,
		service.WithNotifier(notifier),
		service.WithSubmissionLogger(log),
		service.WithSubmissionMetrics(appMetrics),
		service.WithSubmissionPhoneRegion(cfg.PhoneRegion),
	)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Error(ctx, "failed to bootstrap admin", err)
			os.Exit(1)
		}
		if created {
			log.InfoFields(ctx, "admin account created", map[string]any{"email": cfg.AdminEmail})
		}
	}

	if err := directoryService.Load(ctx); err != nil {
		log.Error(ctx, "initial directory load failed, serving an empty directory", err)
	}
	directoryService.StartRefresh(rootCtx, cfg.DirectoryRefresh)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID(log))
	e.Use(middlewarepkg.Logging(log))
	e.Use(middlewarepkg.Metrics(appMetrics))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	router.Register(e, cfg, jwtManager, log, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Companies:   handler.NewCompaniesHandler(directoryService),
		Submissions: handler.NewSubmissionsHandler(submissionService),
		Admin:       handler.NewAdminHandler(submissionService, directoryService),
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.InfoFields(rootCtx, "http server listening", map[string]any{"port": cfg.Port})
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.InfoFields(rootCtx, "shutting down", map[string]any{"signal": sig.String()})
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(rootCtx, "server error", err)
			os.Exit(1)
		}
		return
	}
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "graceful shutdown failed", err)
	}
}
