package vouchers

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PostingInput describes one movement line in a create request.
type PostingInput struct {
	AccountID   int64
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// CreateInput groups fields required to open a draft voucher.
type CreateInput struct {
	TenantID    int64
	Type        VoucherType
	Date        time.Time
	Description string
	CreatedBy   int64
	Lines       []PostingInput
}

// Validate checks per-line shape. Balance is deliberately not checked here:
// drafts may be unbalanced until approval recomputes and verifies totals.
func (in CreateInput) Validate() error {
	if in.TenantID == 0 {
		return errors.New("vouchers: tenant required")
	}
	if !in.Type.Valid() {
		return ErrUnknownType
	}
	if in.Date.IsZero() {
		return errors.New("vouchers: date required")
	}
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("vouchers: line %d missing account", idx)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: %w", idx, ErrLineNegative)
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return fmt.Errorf("line %d: %w", idx, ErrLineBothSides)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("line %d: %w", idx, ErrLineNoAmount)
		}
	}
	return nil
}

// VoidInput wraps parameters for voiding.
type VoidInput struct {
	TenantID  int64
	VoucherID int64
	ActorID   int64
	Reason    string
}
