package cart

import "errors"

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrLineNotFound      = errors.New("line not found in cart")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrSizeUnavailable   = errors.New("size not available")
	ErrInsufficientStock = errors.New("insufficient stock")
)
