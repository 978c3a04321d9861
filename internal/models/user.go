package models

import "gorm.io/gorm"

// Staff roles.
const (
	RoleAdmin   = "ADMIN"
	RoleCashier = "CASHIER"
	RoleChef    = "CHEF"
)

// User represents a staff member of the shop.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(16)" validate:"required,oneof=ADMIN CASHIER CHEF"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
