package models

import "gorm.io/gorm"

// Category groups products on the menu.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	gorm.Model
}

// Product represents a menu item. Price is in minor currency units. Sizes and
// Temperatures list the selectable variant axes; both empty means the product
// has no variants.
type Product struct {
	ID           string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string   `json:"name" validate:"required,min=2,max=100"`
	Description  string   `json:"description" validate:"omitempty,max=500"`
	Price        int64    `json:"price" validate:"required,gt=0"`
	CategoryID   string   `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	ImageURL     string   `json:"image_url" validate:"omitempty,max=500"`
	IsAvailable  bool     `json:"is_available" gorm:"default:true"`
	Sizes        []string `json:"sizes,omitempty" gorm:"serializer:json"`
	Temperatures []string `json:"temperatures,omitempty" gorm:"serializer:json"`
	gorm.Model
}
