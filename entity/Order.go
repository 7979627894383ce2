package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Code       string `gorm:"uniqueIndex" json:"code"`
	Subtotal   int64  `json:"subtotal"`
	Total      int64  `json:"total"`
	PickupTime string `json:"pickupTime"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload only for staff views

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	ReservationID *uint        `json:"reservationId"`
	Reservation   *Reservation `json:"-"`

	OrderItems []OrderItem `json:"-"` // preload only on detail
}
