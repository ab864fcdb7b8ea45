package db

import (
	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Color{},
		&model.Product{},
		&model.Variant{},
		&model.VariantImage{},
		&model.Comment{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
