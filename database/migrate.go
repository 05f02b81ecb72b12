package database

import (
	"github.com/enosgb/admarket-back/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Store{},
		&models.Ad{},
		&models.Favorite{},
	); err != nil {
		return err
	}

	// Partial unique indexes: AutoMigrate cannot express conditional
	// uniqueness, and these are the final word under concurrent writers.
	// Application-level pre-checks only give friendlier errors.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_main_image_per_product
		ON product_images (product_id)
		WHERE is_main AND deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_favorite_user_product
		ON favorites (user_id, product_id)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	return nil
}
