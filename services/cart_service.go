package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/availability"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/cart"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/repository"
)

// CartService keeps the per-user cart in memory (authoritative for the
// session) and mirrors every mutation to the snapshot table. Mirror
// failures are logged and swallowed; they never block a mutation.
type CartService struct {
	SnapRepo *repository.CartSnapshotRepository
	MenuRepo *repository.MenuRepository
	Window   availability.Window
	Now      func() time.Time

	mu     sync.Mutex
	carts  map[uint]cart.Cart
	loaded map[uint]bool
}

func NewCartService(snapRepo *repository.CartSnapshotRepository, menuRepo *repository.MenuRepository, window availability.Window) *CartService {
	return &CartService{
		SnapRepo: snapRepo,
		MenuRepo: menuRepo,
		Window:   window,
		Now:      time.Now,
		carts:    make(map[uint]cart.Cart),
		loaded:   make(map[uint]bool),
	}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Qty        int  `json:"qty" binding:"min=0"`
}

// Get returns the current cart and its subtotal, resuming from the
// persisted snapshot on first touch.
func (s *CartService) Get(ctx context.Context, userID uint) (cart.Cart, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ensureLoaded(ctx, userID)
	return c, cart.Subtotal(c), nil
}

// Add is gated by the open-hours window: outside it the cart is left
// untouched and the rejection names the boundary time.
func (s *CartService) Add(ctx context.Context, userID uint, in *AddToCartIn) error {
	if err := s.guardOpen(); err != nil {
		return err
	}

	m, err := s.MenuRepo.GetBasics(ctx, in.MenuItemID)
	if err != nil {
		return err
	}
	if !m.Available {
		return errors.New("menu item not available")
	}

	line := cart.Line{
		ItemID:     strconv.FormatUint(uint64(m.ID), 10),
		Name:       m.Name,
		UnitPrice:  m.Price,
		Qty:        in.Qty,
		Category:   m.Category,
		DietaryTag: m.FoodType,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ensureLoaded(ctx, userID)
	s.carts[userID] = cart.Add(c, line)
	s.mirror(ctx, userID)
	return nil
}

// UpdateQty sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQty(ctx context.Context, userID uint, itemID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ensureLoaded(ctx, userID)
	s.carts[userID] = cart.SetQuantity(c, itemID, qty)
	s.mirror(ctx, userID)
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID uint, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ensureLoaded(ctx, userID)
	s.carts[userID] = cart.Remove(c, itemID)
	s.mirror(ctx, userID)
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx, userID)
	s.carts[userID] = cart.Clear(s.carts[userID])
	s.mirror(ctx, userID)
	return nil
}

// Snapshot hands the order flow a copy of the current cart.
func (s *CartService) Snapshot(ctx context.Context, userID uint) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ensureLoaded(ctx, userID)
	out := make(cart.Cart, len(c))
	copy(out, c)
	return out
}

// ClearAfterOrder empties both the in-memory cart and the mirror once an
// order has been confirmed.
func (s *CartService) ClearAfterOrder(ctx context.Context, userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = cart.Cart{}
	s.loaded[userID] = true
	if err := s.SnapRepo.Clear(ctx, userID); err != nil {
		log.Printf("cart mirror clear failed for user %d: %v", userID, err)
	}
}

// guardOpen rejects mutation outside open hours, naming the boundary.
func (s *CartService) guardOpen() error {
	switch s.Window.StatusAt(s.Now()) {
	case availability.StatusOpeningSoon:
		return fmt.Errorf("%w: opens at %s", ErrOutsideHours, s.Window.OpensAt)
	case availability.StatusClosed:
		return fmt.Errorf("%w: closed at %s", ErrOutsideHours, s.Window.ClosesAt)
	default:
		return nil
	}
}

// ensureLoaded resumes the session cart from its snapshot once. Callers
// must hold s.mu.
func (s *CartService) ensureLoaded(ctx context.Context, userID uint) cart.Cart {
	if !s.loaded[userID] {
		c, err := s.SnapRepo.Load(ctx, userID)
		if err != nil {
			log.Printf("cart snapshot load failed for user %d: %v", userID, err)
			c = nil
		}
		if c == nil {
			c = cart.Cart{}
		}
		s.carts[userID] = c
		s.loaded[userID] = true
	}
	return s.carts[userID]
}

// mirror persists the cart best-effort. Callers must hold s.mu.
func (s *CartService) mirror(ctx context.Context, userID uint) {
	if err := s.SnapRepo.Save(ctx, userID, s.carts[userID]); err != nil {
		log.Printf("cart mirror save failed for user %d: %v", userID, err)
	}
}
