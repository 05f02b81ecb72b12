package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(100);not null;index"`
	Description string `json:"description" gorm:"type:varchar(200)"`
	Active      bool   `json:"active" gorm:"default:true;index"`
	Image       string `json:"image" gorm:"type:text"`
}
