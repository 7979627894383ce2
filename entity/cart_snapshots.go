package entity

import (
	"gorm.io/gorm"
)

// CartSnapshot mirrors a user's in-memory cart as one serialized row,
// the single "storage key" per user. Best effort only: the in-memory cart
// stays authoritative for the session.
type CartSnapshot struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex" json:"userId"`
	Payload []byte `gorm:"type:blob" json:"-"` // JSON-encoded []cart.Line
}
