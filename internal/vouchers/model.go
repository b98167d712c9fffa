package vouchers

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType enumerates journal voucher kinds.
type VoucherType string

const (
	VoucherTypeIncome     VoucherType = "INCOME"
	VoucherTypeExpense    VoucherType = "EXPENSE"
	VoucherTypeAdjustment VoucherType = "ADJUSTMENT"
	VoucherTypeOpening    VoucherType = "OPENING"
	VoucherTypeClosing    VoucherType = "CLOSING"
)

// Valid reports whether t is a known voucher type.
func (t VoucherType) Valid() bool {
	switch t {
	case VoucherTypeIncome, VoucherTypeExpense, VoucherTypeAdjustment, VoucherTypeOpening, VoucherTypeClosing:
		return true
	}
	return false
}

// VoucherStatus enumerates lifecycle states. DRAFT may become APPROVED,
// APPROVED may become VOIDED, VOIDED is terminal.
type VoucherStatus string

const (
	StatusDraft    VoucherStatus = "DRAFT"
	StatusApproved VoucherStatus = "APPROVED"
	StatusVoided   VoucherStatus = "VOIDED"
)

// Voucher is one journal entry: a dated, described envelope of postings.
type Voucher struct {
	ID          int64
	TenantID    int64
	Number      int64
	Type        VoucherType
	Date        time.Time
	Description string
	Status      VoucherStatus
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	CreatedBy   int64
	CreatedAt   time.Time
	ApprovedAt  *time.Time
	Lines       []Posting
}

// Posting is a single debit-or-credit movement against one account.
type Posting struct {
	ID          int64
	VoucherID   int64
	AccountID   int64
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Position    int
}
