package models

import "gorm.io/gorm"

type Store struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(150);not null;index"`
	Description string `json:"description" gorm:"type:text"`
	City        string `json:"city" gorm:"type:varchar(100);index"`
	State       string `json:"state" gorm:"type:varchar(100);index"`
	Active      bool   `json:"active" gorm:"default:true;index"`
	Image       string `json:"image" gorm:"type:text"`
}
