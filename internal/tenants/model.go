// Package tenants manages the companies the ledger is partitioned by.
// Every core operation elsewhere takes an explicit tenant ID; this package
// owns the rows those IDs point at.
package tenants

import (
	"errors"
	"time"
)

// Tenant is one company with its own chart of accounts and ledger.
type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound   = errors.New("tenants: not found")
	ErrTaxIDTaken = errors.New("tenants: tax id already registered")
)
