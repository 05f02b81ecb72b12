package database

import (
	"os"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"gorm.io/gorm"
)

// SeedAdmin creates the initial staff account when none exists yet.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@admarket.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Name:     "Administrator",
		Password: hash,
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
