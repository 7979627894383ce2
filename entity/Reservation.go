package entity

import (
	"gorm.io/gorm"
)

// Reservation books one physical seat for one date/time slot. The
// composite unique index makes concurrent bookings of the same seat
// impossible even when the application-level conflict check races.
type Reservation struct {
	gorm.Model
	Date      string `gorm:"uniqueIndex:idx_seat_booking;not null" json:"date"` // "2006-01-02"
	TimeSlot  string `gorm:"uniqueIndex:idx_seat_booking;not null" json:"timeSlot"`
	Seat      string `gorm:"uniqueIndex:idx_seat_booking;not null" json:"seat"`
	Area      string `json:"area"`
	PartySize int    `json:"partySize"`

	UserID uint `json:"userId"`
	User   User `json:"-"`
}
