package models

import "gorm.io/gorm"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is an employee account. Accounts are created through /registration
// (admin only) and never deleted.
type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"default:''"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
	Role     string `json:"role" gorm:"default:'employee'"`
}
