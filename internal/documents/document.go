// Package documents turns commercial documents into journal vouchers. A
// document knows which accounts its legs post to and what its totals are;
// one generator resolves the accounts and posts the voucher. Adding a new
// document kind means adding a type, not touching the generator.
package documents

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/money"
	"github.com/IntenseCord/Proyecto-POO2/internal/vouchers"
)

// TaxRate is the IVA rate applied to taxed documents.
var TaxRate = decimal.New(19, -2)

// Totals are the monetary components of a document.
type Totals struct {
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Gross decimal.Decimal `json:"gross"`
}

// Entry is one voucher leg expressed against an account code. The
// generator resolves codes to tenant account IDs at posting time.
type Entry struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Document is anything that can be posted to the ledger.
type Document interface {
	Validate() error
	Totals() Totals
	Entries() []Entry
	Description() string
	Date() time.Time
	VoucherType() vouchers.VoucherType
}

var (
	ErrInvalidAmount  = errors.New("documents: net amount must be positive")
	ErrMissingParty   = errors.New("documents: party name required")
	ErrMissingNumber  = errors.New("documents: document number required")
	ErrMissingDate    = errors.New("documents: date required")
	ErrAccountMissing = errors.New("documents: ledger account not configured for tenant")
)

// taxedTotals derives IVA and gross from a net amount.
func taxedTotals(net decimal.Decimal) Totals {
	tax := money.Round(net.Mul(TaxRate))
	return Totals{Net: money.Round(net), Tax: tax, Gross: money.Round(net).Add(tax)}
}

// untaxedTotals covers documents that move money without IVA.
func untaxedTotals(amount decimal.Decimal) Totals {
	return Totals{Net: money.Round(amount), Tax: decimal.Zero, Gross: money.Round(amount)}
}

// header holds the fields every document shares.
type header struct {
	Number   string          `json:"number"`
	Party    string          `json:"party"`
	IssuedAt time.Time       `json:"issued_at"`
	Amount   decimal.Decimal `json:"amount"`
}

func (h header) validate() error {
	if h.Number == "" {
		return ErrMissingNumber
	}
	if h.Party == "" {
		return ErrMissingParty
	}
	if h.IssuedAt.IsZero() {
		return ErrMissingDate
	}
	if !h.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (h header) Date() time.Time {
	return h.IssuedAt
}
