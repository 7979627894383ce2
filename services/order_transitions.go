package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Staff progress orders Pending -> Preparing -> Ready -> Completed; a
// Pending order can still be cancelled by staff or its owner. Every flip
// is a compare-and-set on the current status so two staff tapping the
// same order can't double-advance it.

func (s *OrderService) StaffAccept(ctx context.Context, orderID uint) error {
	return s.transition(ctx, orderID, s.Status.Pending, s.Status.Preparing)
}

func (s *OrderService) StaffMarkReady(ctx context.Context, orderID uint) error {
	return s.transition(ctx, orderID, s.Status.Preparing, s.Status.Ready)
}

func (s *OrderService) StaffComplete(ctx context.Context, orderID uint) error {
	return s.transition(ctx, orderID, s.Status.Ready, s.Status.Completed)
}

func (s *OrderService) StaffCancel(ctx context.Context, orderID uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.cancelPending(tx, orderID)
	})
	if err != nil {
		return err
	}
	s.Hub.Notify("orders")
	return nil
}

// CancelForUser cancels the caller's own order, Pending only.
func (s *OrderService) CancelForUser(ctx context.Context, userID, orderID uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderForUser(tx, userID, orderID)
		if err != nil {
			return err
		}
		return s.cancelPending(tx, o.ID)
	})
	if err != nil {
		return err
	}
	s.Hub.Notify("orders")
	return nil
}

// cancelPending flips Pending -> Cancelled and puts the ordered
// quantities back on the shelf. The status name is matched
// case-insensitively before the guarded update.
func (s *OrderService) cancelPending(tx *gorm.DB, orderID uint) error {
	o, err := s.Repo.GetOrder(tx, orderID)
	if err != nil {
		return err
	}
	name, err := s.Repo.GetStatusName(tx, o.OrderStatusID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(name, "Pending") {
		return ErrNotPending
	}

	affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.OrderStatusID, s.Status.Cancelled)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotPending
	}

	return s.restoreStock(tx, o.ID)
}

// restoreStock re-adds each ordered quantity to its menu item.
func (s *OrderService) restoreStock(tx *gorm.DB, orderID uint) error {
	items, err := s.Repo.GetOrderItems(tx, orderID)
	if err != nil {
		return err
	}
	for _, it := range items {
		stock, err := s.MenuRepo.GetStock(tx, it.MenuItemID)
		if err != nil {
			return err
		}
		if err := s.MenuRepo.SetStock(tx, it.MenuItemID, stock+it.Qty); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) transition(ctx context.Context, orderID, fromID, toID uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, fromID, toID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.New("invalid_or_conflict")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Hub.Notify("orders")
	return nil
}
