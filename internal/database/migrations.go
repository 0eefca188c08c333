package database

import (
	"LinkRewards-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs automatic migrations for all domain models.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	// Order matters because of the clicks -> links foreign key.
	models := []interface{}{
		&domain.Link{},
		&domain.Click{},
	}

	for _, model := range models {
		modelName := fmt.Sprintf("%T", model)

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}

		log.Info("model migrated", zap.String("model", modelName))
	}

	log.Info("database auto-migration completed", zap.Int("migrated_models", len(models)))
	return nil
}
