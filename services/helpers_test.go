package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/availability"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testWindow = availability.Window{OpensAt: "09:00", ClosesAt: "17:00"}

func duringHours() time.Time {
	return time.Date(2025, time.March, 3, 12, 0, 0, 0, time.Local)
}

func beforeOpen() time.Time {
	return time.Date(2025, time.March, 3, 8, 59, 0, 0, time.Local)
}

func afterClose() time.Time {
	return time.Date(2025, time.March, 3, 17, 0, 0, 0, time.Local)
}

// newTestDB opens a named in-memory sqlite database (shared cache so the
// pool's connections all see the same tables) and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.Reservation{},
		&entity.CartSnapshot{},
	))
	for _, s := range []string{"Pending", "Preparing", "Ready", "Completed", "Cancelled"} {
		require.NoError(t, db.Create(&entity.OrderStatus{StatusName: s}).Error)
	}
	return db
}

func seedMenu(t *testing.T, db *gorm.DB) (rice, tea entity.MenuItem) {
	t.Helper()
	rice = entity.MenuItem{Name: "Chicken Rice", Price: 7500, Category: "Meals", FoodType: "non-veg", Available: true, Stock: 10}
	tea = entity.MenuItem{Name: "Iced Tea", Price: 2500, Category: "Drinks", FoodType: "veg", Available: true, Stock: 20}
	require.NoError(t, db.Create(&rice).Error)
	require.NoError(t, db.Create(&tea).Error)
	return rice, tea
}

func newCartService(t *testing.T, db *gorm.DB) *CartService {
	t.Helper()
	svc := NewCartService(
		repository.NewCartSnapshotRepository(db),
		repository.NewMenuRepository(db),
		testWindow,
	)
	svc.Now = duringHours
	return svc
}

func newOrderService(t *testing.T, db *gorm.DB, cartSvc *CartService) *OrderService {
	t.Helper()
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewMenuRepository(db),
		repository.NewReservationRepository(db),
		cartSvc,
		NopNotifier{},
		testWindow,
		5*time.Second,
	)
	svc.Now = duringHours
	return svc
}
