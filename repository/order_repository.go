package repository

import (
	"strings"
	"time"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(db *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := db.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(db *gorm.DB, userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderSummary is the row shape for the student's order history list.
type OrderSummary struct {
	ID            uint      `json:"id"`
	Code          string    `json:"code"`
	Total         int64     `json:"total"`
	OrderStatusID uint      `json:"orderStatusId"`
	PickupTime    string    `json:"pickupTime"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(db *gorm.DB, userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := db.Model(&entity.Order{}).
		Select("id, code, total, order_status_id, pickup_time, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// StaffOrderSummary joins the customer name for the staff queue view.
type StaffOrderSummary struct {
	ID            uint      `json:"id"`
	Code          string    `json:"code"`
	UserID        uint      `json:"userId"`
	CustomerName  string    `json:"customerName"`
	Total         int64     `json:"total"`
	OrderStatusID uint      `json:"orderStatusId"`
	PickupTime    string    `json:"pickupTime"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(db *gorm.DB, statusID *uint, page, limit int) ([]StaffOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := db.Table("orders AS o").Where("o.deleted_at IS NULL")
	if statusID != nil && *statusID != 0 {
		dbCount = dbCount.Where("o.order_status_id = ?", *statusID)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID            uint
		Code          string
		UserID        uint
		Total         int64
		OrderStatusID uint
		PickupTime    string
		CreatedAt     time.Time
		FirstName     string
		LastName      string
	}
	q := db.Table("orders AS o").
		Select("o.id, o.code, o.user_id, o.total, o.order_status_id, o.pickup_time, o.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.deleted_at IS NULL")
	if statusID != nil && *statusID != 0 {
		q = q.Where("o.order_status_id = ?", *statusID)
	}
	if err := q.Order("o.id ASC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]StaffOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, StaffOrderSummary{
			ID:            row.ID,
			Code:          row.Code,
			UserID:        row.UserID,
			CustomerName:  strings.TrimSpace(row.FirstName + " " + row.LastName),
			Total:         row.Total,
			OrderStatusID: row.OrderStatusID,
			PickupTime:    row.PickupTime,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, total, nil
}

func (r *OrderRepository) GetOrderItems(db *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := db.Model(&entity.OrderItem{}).
		Select("id, name, qty, unit_price, total, menu_item_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// UpdateStatusGuard flips the status only when the order is still in the
// expected state; the caller checks RowsAffected to detect a lost race or
// an invalid transition.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID, fromID, toID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND order_status_id = ?", orderID, fromID).
		Update("order_status_id", toID)
	return res.RowsAffected, res.Error
}

// ---------------- Status lookup ----------------

func (r *OrderRepository) GetStatusIDByName(name string) (uint, error) {
	var row struct{ ID uint }
	err := r.DB.Model(&entity.OrderStatus{}).
		Select("id").Where("status_name = ?", name).First(&row).Error
	return row.ID, err
}

func (r *OrderRepository) GetStatusName(db *gorm.DB, id uint) (string, error) {
	var row struct{ StatusName string }
	err := db.Model(&entity.OrderStatus{}).
		Select("status_name").Where("id = ?", id).First(&row).Error
	return row.StatusName, err
}
