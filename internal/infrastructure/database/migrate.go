package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/celebigilfatih/omt/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	logger.Info("GORM auto-migrations completed successfully")

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes GORM tags cannot express portably.
func createCustomIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_team_applications_pending ON team_applications (created_at DESC) WHERE status = 'PENDING'`,
		`CREATE INDEX IF NOT EXISTS idx_teams_team_name_lower ON teams (LOWER(team_name))`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
