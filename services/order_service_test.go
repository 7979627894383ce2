package services

import (
	"context"
	"testing"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countOrders(t *testing.T, svc *OrderService) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.DB.Model(&entity.Order{}).Count(&n).Error)
	return n
}

func stockOf(t *testing.T, svc *OrderService, id uint) int {
	t.Helper()
	var m entity.MenuItem
	require.NoError(t, svc.DB.First(&m, id).Error)
	return m.Stock
}

func TestPlaceOrderEmptyCartFails(t *testing.T) {
	db := newTestDB(t)
	seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)

	out, err := svc.PlaceOrder(context.Background(), 1, &PlaceOrderReq{})
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, FlowFailed, out.State)
	assert.Equal(t, int64(0), countOrders(t, svc))
}

func TestPlaceOrderOutsideHoursFails(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))
	before := cartSvc.Snapshot(ctx, 1)

	svc.Now = beforeOpen
	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.ErrorIs(t, err, ErrOutsideHours)
	assert.Contains(t, err.Error(), "09:00")
	assert.Equal(t, FlowFailed, out.State)
	assert.Equal(t, int64(0), countOrders(t, svc))
	assert.Equal(t, before, cartSvc.Snapshot(ctx, 1))
}

func TestPlaceOrderSuccess(t *testing.T) {
	db := newTestDB(t)
	rice, tea := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 2}))
	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: tea.ID, Qty: 1}))

	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{PickupTime: "12:30"})
	require.NoError(t, err)
	assert.Equal(t, FlowSucceeded, out.State)
	assert.NotEmpty(t, out.Code)
	assert.Equal(t, int64(2*7500+2500), out.Total)

	detail, err := svc.DetailForUser(ctx, 1, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", detail.StatusName)
	assert.Equal(t, "12:30", detail.PickupTime)
	require.Len(t, detail.Items, 2)

	// stock taken
	assert.Equal(t, 8, stockOf(t, svc, rice.ID))
	assert.Equal(t, 19, stockOf(t, svc, tea.ID))

	// cart and its mirror are empty after success
	items, subtotal, err := cartSvc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), subtotal)

	resumed := newCartService(t, db)
	items, _, err = resumed.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceOrderFailureLeavesCartUntouched(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	require.NoError(t, db.Model(&rice).Update("stock", 1).Error)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 2}))
	before := cartSvc.Snapshot(ctx, 1)

	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, FlowFailed, out.State)

	// transaction rolled back: no rows, stock intact, cart element-wise equal
	assert.Equal(t, int64(0), countOrders(t, svc))
	assert.Equal(t, 1, stockOf(t, svc, rice.ID))
	assert.Equal(t, before, cartSvc.Snapshot(ctx, 1))
}

func TestPlaceOrderWithReservation(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))

	res := &ReservationIn{Date: "2025-03-04", TimeSlot: "12:00-13:00", Seat: "A12", Area: "Window", PartySize: 2}
	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{Reservation: res})
	require.NoError(t, err)
	assert.Equal(t, FlowSucceeded, out.State)

	var booked entity.Reservation
	require.NoError(t, db.Where("seat = ?", "A12").First(&booked).Error)
	assert.Equal(t, uint(1), booked.UserID)

	var order entity.Order
	require.NoError(t, db.First(&order, out.OrderID).Error)
	require.NotNil(t, order.ReservationID)
	assert.Equal(t, booked.ID, *order.ReservationID)
}

func TestPlaceOrderSeatTaken(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	taken := entity.Reservation{Date: "2025-03-04", TimeSlot: "12:00-13:00", Seat: "A12", UserID: 9, PartySize: 1}
	require.NoError(t, db.Create(&taken).Error)

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))
	before := cartSvc.Snapshot(ctx, 1)

	res := &ReservationIn{Date: "2025-03-04", TimeSlot: "12:00-13:00", Seat: "A12", PartySize: 2}
	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{Reservation: res})
	require.ErrorIs(t, err, ErrSeatTaken)
	assert.Contains(t, err.Error(), "A12")
	assert.Equal(t, FlowFailed, out.State)
	assert.Equal(t, int64(0), countOrders(t, svc))
	assert.Equal(t, before, cartSvc.Snapshot(ctx, 1))
}

func TestCancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 3}))
	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.NoError(t, err)
	require.Equal(t, 7, stockOf(t, svc, rice.ID))

	require.NoError(t, svc.CancelForUser(ctx, 1, out.OrderID))
	assert.Equal(t, 10, stockOf(t, svc, rice.ID))

	detail, err := svc.DetailForUser(ctx, 1, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", detail.StatusName)

	// a second cancel must not restore stock again
	err = svc.CancelForUser(ctx, 1, out.OrderID)
	require.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, 10, stockOf(t, svc, rice.ID))
}

func TestCancelOnlyOwnOrders(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))
	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.NoError(t, err)

	err = svc.CancelForUser(ctx, 2, out.OrderID)
	require.Error(t, err)

	detail, err := svc.DetailForUser(ctx, 1, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", detail.StatusName)
}

func TestStaffProgression(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))
	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.NoError(t, err)

	require.NoError(t, svc.StaffAccept(ctx, out.OrderID))
	require.NoError(t, svc.StaffMarkReady(ctx, out.OrderID))
	require.NoError(t, svc.StaffComplete(ctx, out.OrderID))

	detail, err := svc.DetailForUser(ctx, 1, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", detail.StatusName)

	// re-running a step fails the compare-and-set
	err = svc.StaffAccept(ctx, out.OrderID)
	require.Error(t, err)

	// completed orders can no longer be cancelled
	err = svc.CancelForUser(ctx, 1, out.OrderID)
	require.ErrorIs(t, err, ErrNotPending)
}

func TestStaffListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	require.NoError(t, db.Create(&entity.User{Email: "s@x.edu", FirstName: "Asha", LastName: "R", Role: "student"}).Error)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))
	first, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.NoError(t, err)

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))
	_, err = svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.NoError(t, err)

	require.NoError(t, svc.StaffAccept(ctx, first.OrderID))

	pending := svc.Status.Pending
	out, err := svc.ListForStaff(ctx, &pending, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Asha R", out.Items[0].CustomerName)
}

func TestStatusIDsResolvedAtConstruction(t *testing.T) {
	db := newTestDB(t)
	seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)

	// all five lookup rows must resolve, or orders would be written
	// with status id 0
	assert.NotZero(t, svc.Status.Pending)
	assert.NotZero(t, svc.Status.Preparing)
	assert.NotZero(t, svc.Status.Ready)
	assert.NotZero(t, svc.Status.Completed)
	assert.NotZero(t, svc.Status.Cancelled)
}

func TestStaffDetailSeesAnyOrder(t *testing.T) {
	db := newTestDB(t)
	rice, _ := seedMenu(t, db)
	cartSvc := newCartService(t, db)
	svc := newOrderService(t, db, cartSvc)
	ctx := context.Background()

	require.NoError(t, cartSvc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Qty: 1}))
	out, err := svc.PlaceOrder(ctx, 1, &PlaceOrderReq{})
	require.NoError(t, err)

	// owner scoping blocks other students
	_, err = svc.DetailForUser(ctx, 2, out.OrderID)
	require.Error(t, err)

	// the unscoped staff view opens it
	detail, err := svc.Detail(ctx, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, out.OrderID, detail.ID)
	assert.Equal(t, "Pending", detail.StatusName)
}
