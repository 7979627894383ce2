package repository

import (
	"context"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"gorm.io/gorm"
)

type ReservationRepository struct{ DB *gorm.DB }

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// HasConflict reports whether the seat is already booked for the
// date/slot. The unique index on (date, time_slot, seat) is the real
// guard; this check exists to give a clean error before the insert.
func (r *ReservationRepository) HasConflict(db *gorm.DB, date, timeSlot, seat string) (bool, error) {
	var cnt int64
	err := db.Model(&entity.Reservation{}).
		Where("date = ? AND time_slot = ? AND seat = ?", date, timeSlot, seat).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *ReservationRepository) Create(tx *gorm.DB, res *entity.Reservation) error {
	return tx.Create(res).Error
}

func (r *ReservationRepository) ListForUser(ctx context.Context, userID uint) ([]entity.Reservation, error) {
	var out []entity.Reservation
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time_slot DESC").
		Find(&out).Error
	return out, err
}

func (r *ReservationRepository) GetForUser(ctx context.Context, userID, id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// Exists reports whether a booking with this id exists for any user.
func (r *ReservationRepository) Exists(db *gorm.DB, id uint) (bool, error) {
	var cnt int64
	err := db.Model(&entity.Reservation{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

// Delete removes the booking outright (hard delete) so the seat's unique
// slot frees up for rebooking.
func (r *ReservationRepository) Delete(tx *gorm.DB, userID, id uint) (int64, error) {
	res := tx.Unscoped().
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Reservation{})
	return res.RowsAffected, res.Error
}
