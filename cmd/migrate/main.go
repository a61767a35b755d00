package main

import (
	"fmt"
	"os"

	"mensa/internal/config"
	"mensa/internal/database"
	"mensa/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|reset|version>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	manager, err := database.NewManager(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}()

	command := os.Args[1]

	switch command {
	case "up":
		if err := manager.Migrate(); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Schema is up to date")

	case "reset":
		if err := manager.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		logger.Get().Info("Schema dropped and recreated; all data discarded")

	case "version":
		version, err := manager.SchemaVersion()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Stamped schema version: %d", version)

	default:
		return fmt.Errorf("unknown command: %s (use up, reset, or version)", command)
	}

	return nil
}
