package models

import (
	"time"

	"gorm.io/gorm"
)

// Ad is publicly visible only while both Active and Published are true.
// Product and store references are optional and survive as NULL when the
// referenced row is deleted.
type Ad struct {
	gorm.Model
	Title       string     `json:"title" gorm:"type:varchar(150);not null;index"`
	Description string     `json:"description" gorm:"type:text"`
	Slug        string     `json:"slug" gorm:"type:varchar(255);uniqueIndex"`
	Active      bool       `json:"active" gorm:"default:true;index"`
	Published   bool       `json:"published" gorm:"default:false;index"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ProductID   *uint      `json:"product_id" gorm:"index"`
	StoreID     *uint      `json:"store_id" gorm:"index"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
	Store   *Store   `json:"-" gorm:"foreignKey:StoreID"`
}
