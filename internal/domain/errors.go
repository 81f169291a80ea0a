package domain

import "errors"

// User-correctable failures. Handlers turn these into short speech
// strings; they are never rendered as raw error text.
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrNotInCart        = errors.New("item not in cart")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyDelivered = errors.New("order already delivered")
)
