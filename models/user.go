package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User logs in with email; there is no separate username.
type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	Name     string `json:"name" gorm:"type:varchar(150)"`
	Image    string `json:"image" gorm:"type:text"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"type:varchar(10);default:user;index"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
