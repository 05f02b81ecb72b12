package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product belongs to exactly one category; the category cannot be deleted
// while products still reference it.
type Product struct {
	gorm.Model
	Name        string          `json:"name" gorm:"type:varchar(100);not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	Active      bool            `json:"active" gorm:"default:true;index"`
	Stock       uint            `json:"stock" gorm:"default:0"`
	CostPrice   decimal.Decimal `json:"cost_price" gorm:"type:decimal(10,2)"`
	SalePrice   decimal.Decimal `json:"sale_price" gorm:"type:decimal(10,2)"`
	Image       string          `json:"image" gorm:"type:text"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index"`

	Category Category       `json:"-" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage `json:"-" gorm:"foreignKey:ProductID"`
}
