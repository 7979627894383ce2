package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/availability"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/cart"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusIDs struct {
	Pending   uint
	Preparing uint
	Ready     uint
	Completed uint
	Cancelled uint
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	MenuRepo *repository.MenuRepository
	ResRepo  *repository.ReservationRepository
	Cart     *CartService
	Hub      ChangeNotifier

	Window  availability.Window
	Timeout time.Duration
	Now     func() time.Time
	Status  StatusIDs
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menuRepo *repository.MenuRepository,
	resRepo *repository.ReservationRepository,
	cartSvc *CartService,
	hub ChangeNotifier,
	window availability.Window,
	timeout time.Duration,
) *OrderService {
	s := &OrderService{
		DB: db, Repo: repo, MenuRepo: menuRepo, ResRepo: resRepo,
		Cart: cartSvc, Hub: hub, Window: window, Timeout: timeout,
		Now: time.Now,
	}

	s.Status.Pending = s.statusID("Pending")
	s.Status.Preparing = s.statusID("Preparing")
	s.Status.Ready = s.statusID("Ready")
	s.Status.Completed = s.statusID("Completed")
	s.Status.Cancelled = s.statusID("Cancelled")

	return s
}

// statusID resolves a lookup row to its id at construction. A zero id
// means the status table was not seeded; log it here instead of failing
// obscurely on the first insert.
func (s *OrderService) statusID(name string) uint {
	id, err := s.Repo.GetStatusIDByName(name)
	if err != nil {
		log.Printf("order status %q not found, was the database seeded? %v", name, err)
	}
	return id
}

// FlowState is where the submission flow ended up; returned with the
// result so callers can see which leg failed.
type FlowState string

const (
	FlowIdle       FlowState = "idle"
	FlowValidating FlowState = "validating"
	FlowReserving  FlowState = "reserving"
	FlowSubmitting FlowState = "submitting"
	FlowSucceeded  FlowState = "succeeded"
	FlowFailed     FlowState = "failed"
)

type ReservationIn struct {
	Date      string `json:"date" binding:"required"`
	TimeSlot  string `json:"timeSlot" binding:"required"`
	Seat      string `json:"seat" binding:"required"`
	Area      string `json:"area"`
	PartySize int    `json:"partySize" binding:"min=1"`
}

type PlaceOrderReq struct {
	PickupTime  string         `json:"pickupTime"`
	Reservation *ReservationIn `json:"reservation"`
}

type PlaceOrderRes struct {
	OrderID uint      `json:"orderId"`
	Code    string    `json:"code"`
	Total   int64     `json:"total"`
	State   FlowState `json:"state"`
}

// pendingOrder is the submission-time snapshot of the cart. It lives only
// for the duration of PlaceOrder; on failure it is discarded and the cart
// stays exactly as it was.
type pendingOrder struct {
	lines      cart.Cart
	total      int64
	pickupTime string
}

// PlaceOrder runs the submission flow:
// validating -> (reserving) -> submitting -> succeeded | failed.
// Empty cart and closed hours fail before any write; everything else is a
// single transaction so a backend error leaves no partial rows and the
// cart untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderReq) (*PlaceOrderRes, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	state := FlowValidating
	lines := s.Cart.Snapshot(ctx, userID)
	if len(lines) == 0 {
		return &PlaceOrderRes{State: FlowFailed}, ErrEmptyCart
	}
	if err := s.guardOpen(); err != nil {
		return &PlaceOrderRes{State: FlowFailed}, err
	}

	pending := pendingOrder{lines: lines, total: cart.Subtotal(lines), pickupTime: req.PickupTime}

	var out PlaceOrderRes
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resID *uint
		if req.Reservation != nil {
			state = FlowReserving
			id, err := s.reserveSeat(tx, userID, req.Reservation)
			if err != nil {
				return err
			}
			resID = &id
		}
		state = FlowSubmitting

		order := entity.Order{
			Code:          uuid.NewString(),
			Subtotal:      pending.total,
			Total:         pending.total,
			PickupTime:    pending.pickupTime,
			UserID:        userID,
			OrderStatusID: s.Status.Pending,
			ReservationID: resID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, l := range pending.lines {
			menuItemID, err := parseItemID(l.ItemID)
			if err != nil {
				return err
			}
			oi := entity.OrderItem{
				Name: l.Name, Qty: l.Qty,
				UnitPrice: l.UnitPrice, Total: l.UnitPrice * int64(l.Qty),
				OrderID: order.ID, MenuItemID: menuItemID,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			if err := s.takeStock(tx, menuItemID, l.Qty, l.Name); err != nil {
				return err
			}
		}

		out = PlaceOrderRes{OrderID: order.ID, Code: order.Code, Total: order.Total}
		return nil
	})
	if err != nil {
		// pending snapshot discarded; cart untouched
		log.Printf("order submission failed while %s for user %d: %v", state, userID, err)
		return &PlaceOrderRes{State: FlowFailed}, err
	}

	s.Cart.ClearAfterOrder(ctx, userID)
	s.Hub.Notify("orders")

	out.State = FlowSucceeded
	return &out, nil
}

// reserveSeat is the optional reserving leg: check-then-insert, backed by
// the unique index (a violation from a concurrent insert is still
// reported as the seat being taken).
func (s *OrderService) reserveSeat(tx *gorm.DB, userID uint, in *ReservationIn) (uint, error) {
	taken, err := s.ResRepo.HasConflict(tx, in.Date, in.TimeSlot, in.Seat)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, seatTakenError(in)
	}
	res := entity.Reservation{
		Date: in.Date, TimeSlot: in.TimeSlot, Seat: in.Seat,
		Area: in.Area, PartySize: in.PartySize, UserID: userID,
	}
	if err := s.ResRepo.Create(tx, &res); err != nil {
		if isUniqueViolation(err) {
			return 0, seatTakenError(in)
		}
		return 0, err
	}
	return res.ID, nil
}

// takeStock decrements an item's stock inside tx, failing when there is
// not enough left.
func (s *OrderService) takeStock(tx *gorm.DB, menuItemID uint, qty int, name string) error {
	stock, err := s.MenuRepo.GetStock(tx, menuItemID)
	if err != nil {
		return err
	}
	if stock < qty {
		return fmt.Errorf("%w: %s", ErrInsufficientStock, name)
	}
	return s.MenuRepo.SetStock(tx, menuItemID, stock-qty)
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(ctx context.Context, userID uint, limit int) ([]repository.OrderSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Repo.ListOrdersForUser(s.DB.WithContext(ctx), userID, limit)
}

type OrderDetail struct {
	ID            uint               `json:"id"`
	Code          string             `json:"code"`
	Subtotal      int64              `json:"subtotal"`
	Total         int64              `json:"total"`
	PickupTime    string             `json:"pickupTime"`
	OrderStatusID uint               `json:"orderStatusId"`
	StatusName    string             `json:"statusName"`
	Items         []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForUser(ctx context.Context, userID, orderID uint) (*OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	db := s.DB.WithContext(ctx)

	o, err := s.Repo.GetOrderForUser(db, userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(db, o)
}

// Detail is the staff view of an order: no owner scoping.
func (s *OrderService) Detail(ctx context.Context, orderID uint) (*OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	db := s.DB.WithContext(ctx)

	o, err := s.Repo.GetOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(db, o)
}

func (s *OrderService) buildDetail(db *gorm.DB, o *entity.Order) (*OrderDetail, error) {
	items, err := s.Repo.GetOrderItems(db, o.ID)
	if err != nil {
		return nil, err
	}
	name, err := s.Repo.GetStatusName(db, o.OrderStatusID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{
		ID: o.ID, Code: o.Code, Subtotal: o.Subtotal, Total: o.Total,
		PickupTime: o.PickupTime, OrderStatusID: o.OrderStatusID,
		StatusName: name, Items: items,
	}, nil
}

type StaffOrderListOut struct {
	Items []repository.StaffOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (s *OrderService) ListForStaff(ctx context.Context, statusID *uint, page, limit int) (*StaffOrderListOut, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	items, total, err := s.Repo.ListOrders(s.DB.WithContext(ctx), statusID, page, limit)
	if err != nil {
		return nil, err
	}
	return &StaffOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// ----- helpers -----

func (s *OrderService) guardOpen() error {
	switch s.Window.StatusAt(s.Now()) {
	case availability.StatusOpeningSoon:
		return fmt.Errorf("%w: opens at %s", ErrOutsideHours, s.Window.OpensAt)
	case availability.StatusClosed:
		return fmt.Errorf("%w: closed at %s", ErrOutsideHours, s.Window.ClosesAt)
	default:
		return nil
	}
}

func parseItemID(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad cart item id %q", id)
	}
	return uint(n), nil
}

func seatTakenError(in *ReservationIn) error {
	return fmt.Errorf("%w: seat %s on %s (%s)", ErrSeatTaken, in.Seat, in.Date, in.TimeSlot)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
