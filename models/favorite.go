package models

import "gorm.io/gorm"

// Favorite - a (user, product) pair, unique while not soft-deleted.
// migrate.go adds the partial unique index.
type Favorite struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"not null;index"`
	ProductID uint `json:"product_id" gorm:"not null;index"`

	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}
