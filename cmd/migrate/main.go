package main

import (
	"context"
	"log"

	"github.com/Faizan-Faisal/umt-hackathon/internal/config"
	"github.com/Faizan-Faisal/umt-hackathon/internal/database"
	"github.com/Faizan-Faisal/umt-hackathon/internal/database/schema"
	"github.com/Faizan-Faisal/umt-hackathon/internal/database/schema/migrations"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	db, err := database.New(ctx, database.Options{
		DSN:      cfg.ClickHouseDSN,
		Username: cfg.ClickHouseUsername,
		Password: cfg.ClickHousePassword,
		Database: cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		logger.Fatal("failed to connect to ClickHouse", zap.Error(err))
	}
	defer db.Close()

	migrator := schema.NewMigrator(db.Conn(), logger)

	if err := migrator.CreateMigrationsTable(ctx); err != nil {
		logger.Fatal("failed to create migrations table", zap.Error(err))
	}

	if err := migrator.Apply(ctx, migrations.All); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	logger.Info("all migrations completed successfully")
}
