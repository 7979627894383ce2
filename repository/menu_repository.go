package repository

import (
	"context"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

// MenuQuery carries the catalog search/filter/sort parameters.
type MenuQuery struct {
	Q         string // substring match on name
	Category  string
	FoodType  string // veg | non-veg
	Available *bool
	Sort      string // price_asc | price_desc | name
}

func (r *MenuRepository) List(ctx context.Context, q MenuQuery) ([]entity.MenuItem, error) {
	db := r.DB.WithContext(ctx).Model(&entity.MenuItem{})
	if q.Q != "" {
		db = db.Where("name LIKE ?", "%"+q.Q+"%")
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.FoodType != "" {
		db = db.Where("food_type = ?", q.FoodType)
	}
	if q.Available != nil {
		db = db.Where("available = ?", *q.Available)
	}
	switch q.Sort {
	case "price_asc":
		db = db.Order("price ASC")
	case "price_desc":
		db = db.Order("price DESC")
	case "name":
		db = db.Order("name ASC")
	default:
		db = db.Order("id ASC")
	}
	var items []entity.MenuItem
	err := db.Find(&items).Error
	return items, err
}

func (r *MenuRepository) Get(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetBasics fetches only what the cart and order flows need.
func (r *MenuRepository) GetBasics(ctx context.Context, id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.WithContext(ctx).
		Select("id, name, price, category, food_type, available, stock").
		First(&m, id).Error
	return m, err
}

func (r *MenuRepository) Create(ctx context.Context, m *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MenuRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.MenuItem{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.MenuItem{}, id).Error
}

// GetStock reads the current stock inside tx; pairs with SetStock for the
// order-time decrement and the cancellation restore.
func (r *MenuRepository) GetStock(tx *gorm.DB, id uint) (int, error) {
	var row struct{ Stock int }
	err := tx.Model(&entity.MenuItem{}).Select("stock").Where("id = ?", id).First(&row).Error
	return row.Stock, err
}

func (r *MenuRepository) SetStock(tx *gorm.DB, id uint, stock int) error {
	return tx.Model(&entity.MenuItem{}).Where("id = ?", id).Update("stock", stock).Error
}
