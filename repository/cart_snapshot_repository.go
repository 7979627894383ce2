package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/cart"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"gorm.io/gorm"
)

// CartSnapshotRepository mirrors in-memory carts to storage, one JSON row
// per user. Best effort: callers log failures and move on.
type CartSnapshotRepository struct{ DB *gorm.DB }

func NewCartSnapshotRepository(db *gorm.DB) *CartSnapshotRepository {
	return &CartSnapshotRepository{DB: db}
}

// Load returns the persisted cart, or nil when the user has none.
func (r *CartSnapshotRepository) Load(ctx context.Context, userID uint) (cart.Cart, error) {
	var snap entity.CartSnapshot
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c cart.Cart
	if err := json.Unmarshal(snap.Payload, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save upserts the user's single snapshot row.
func (r *CartSnapshotRepository) Save(ctx context.Context, userID uint, c cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var snap entity.CartSnapshot
	err = r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		snap = entity.CartSnapshot{UserID: userID, Payload: payload}
		return r.DB.WithContext(ctx).Create(&snap).Error
	}
	if err != nil {
		return err
	}
	snap.Payload = payload
	return r.DB.WithContext(ctx).Save(&snap).Error
}

func (r *CartSnapshotRepository) Clear(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.CartSnapshot{}).Error
}
