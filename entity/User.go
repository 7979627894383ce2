package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	// student | staff | admin
	Role string `gorm:"not null;default:student" json:"role"`

	Orders       []Order       `json:"-"`
	Reservations []Reservation `json:"-"`
}
