package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Detail   string `json:"detail"`
	Price    int64  `json:"price"` // minor units (satang)
	Category string `json:"category"`
	// veg | non-veg
	FoodType  string `json:"foodType"`
	Available bool   `gorm:"default:true" json:"available"`
	Stock     int    `json:"stock"`

	Image     []byte `gorm:"type:blob" json:"-"`
	ImageType string `json:"-"`
	ImageSize int64  `json:"-"`

	OrderItems []OrderItem `json:"-"`
}
