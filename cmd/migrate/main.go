package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/octobees/funeral-directory/internal/config"
	"github.com/octobees/funeral-directory/internal/database"
	"github.com/octobees/funeral-directory/internal/logger"
	"github.com/octobees/funeral-directory/internal/migrations"
)

func main() {
	log := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|validate")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	if *cmd == "validate" {
		if err := migrations.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(context.Background(), log, "config", err)

	log = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})
	ctx := log.WithFields(context.Background(), map[string]any{"cmd": *cmd})

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	requireResource(ctx, log, "database", err)
	defer pool.Close()

	sqlDB, err := database.OpenSQL(pool)
	requireResource(ctx, log, "sql database", err)
	defer sqlDB.Close()

	log.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := migrations.Run(ctx, sqlDB, *cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			os.Exit(1)
		}
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		if err := migrations.MigrateToVersion(ctx, sqlDB, *version); err != nil {
			fmt.Fprintf(os.Stderr, "goose version migrate failed: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, log *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	log.Error(ctx, "failed to initialise "+resource, err)
	os.Exit(1)
}
