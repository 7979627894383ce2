package services

import "errors"

// Failure taxonomy for the cart and ordering flows. Controllers map these
// to HTTP codes with errors.Is; messages wrapped around them carry the
// user-facing detail (which boundary time, which seat).
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOutsideHours      = errors.New("canteen is not accepting orders")
	ErrSeatTaken         = errors.New("seat already reserved")
	ErrNotPending        = errors.New("only pending orders can be cancelled")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrForbidden         = errors.New("forbidden")
)
