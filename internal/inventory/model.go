// Package inventory tracks merchandise and turns physical movements into
// ledger entries. Entries and exits post an approved voucher; adjustments
// correct the counted stock without touching the books.
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType enumerates supported stock movements, kept in the original
// warehouse vocabulary.
type MovementType string

const (
	MovementEntry  MovementType = "ENTRADA"
	MovementExit   MovementType = "SALIDA"
	MovementAdjust MovementType = "AJUSTE"
)

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	return t == MovementEntry || t == MovementExit || t == MovementAdjust
}

// Product is one merchandise line with its running quantity and weighted
// average unit cost.
type Product struct {
	ID        int64           `json:"id"`
	TenantID  int64           `json:"tenant_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	SalePrice decimal.Decimal `json:"sale_price"`
	MinStock  decimal.Decimal `json:"min_stock"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BelowMinimum reports whether the product needs restocking. A product
// sitting exactly at its minimum already qualifies.
func (p Product) BelowMinimum() bool {
	return p.Quantity.LessThanOrEqual(p.MinStock)
}

// Movement is one recorded stock change and, for entries and exits, the
// voucher it posted. VoucherID stays nil for adjustments and for movements
// whose voucher generation failed.
type Movement struct {
	ID        int64           `json:"id"`
	TenantID  int64           `json:"tenant_id"`
	ProductID int64           `json:"product_id"`
	Type      MovementType    `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Amount    decimal.Decimal `json:"amount"`
	VoucherID *int64          `json:"voucher_id,omitempty"`
	Note      string          `json:"note"`
	CreatedBy int64           `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}
