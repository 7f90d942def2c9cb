package main

import (
	"flag"
	"log"

	"bizprep/internal/config"
	"bizprep/internal/database"
	"bizprep/internal/logger"

	"go.uber.org/zap"
)

func main() {
	migrationsPath := flag.String("path", "database/migrations", "directory holding migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer l.Sync()

	if err := database.RunMigrations("file://"+*migrationsPath, cfg.GetDatabaseURL()); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	l.Info("Migrations applied", zap.String("path", *migrationsPath))
}
