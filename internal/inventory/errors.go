package inventory

import "errors"

var (
	ErrProductNotFound   = errors.New("inventory: product not found")
	ErrSKUTaken          = errors.New("inventory: sku already registered")
	ErrInvalidQuantity   = errors.New("inventory: quantity must be positive")
	ErrInvalidUnitCost   = errors.New("inventory: unit cost must not be negative")
	ErrInvalidSalePrice  = errors.New("inventory: sale price must not be negative")
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	ErrUnknownMovement   = errors.New("inventory: unknown movement type")
	ErrAccountMissing    = errors.New("inventory: ledger account not configured for tenant")
)
