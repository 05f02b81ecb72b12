package models

import "gorm.io/gorm"

// ProductImage keeps a nullable product reference: deleting the product
// orphans its images instead of deleting them. At most one image per
// product may be main; migrate.go adds the partial unique index that is
// the final authority under concurrent writers.
type ProductImage struct {
	gorm.Model
	ProductID *uint  `json:"product_id" gorm:"index"`
	Image     string `json:"image" gorm:"type:text;not null"`
	IsMain    bool   `json:"is_main" gorm:"default:false;index"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}
