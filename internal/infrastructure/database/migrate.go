package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// Migrate creates or updates the quiz tables
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running GORM auto-migrations...")

	err := db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
		&model.Couple{},
		&model.Answer{},
		&model.QuizResult{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
