package vouchers

import "errors"

var (
	// ErrNotFound indicates the voucher does not exist for the tenant.
	ErrNotFound = errors.New("vouchers: voucher not found")
	// ErrUnbalanced indicates sum of debits != sum of credits at approval.
	ErrUnbalanced = errors.New("vouchers: debits must equal credits")
	// ErrEmpty indicates a voucher with no movement cannot be approved.
	ErrEmpty = errors.New("vouchers: voucher has no movement")
	// ErrLineBothSides indicates a line carrying debit and credit at once.
	ErrLineBothSides = errors.New("vouchers: line cannot carry debit and credit")
	// ErrLineNoAmount indicates a line carrying neither debit nor credit.
	ErrLineNoAmount = errors.New("vouchers: line must carry a debit or a credit")
	// ErrLineNegative indicates a negative amount on a line.
	ErrLineNegative = errors.New("vouchers: amounts must not be negative")
	// ErrAccountNotPostable indicates the account rejects postings.
	ErrAccountNotPostable = errors.New("vouchers: account does not accept postings")
	// ErrAccountUnknown indicates a line referencing a missing account.
	ErrAccountUnknown = errors.New("vouchers: account not found")
	// ErrNotDraft indicates an approval attempt on a non-DRAFT voucher.
	ErrNotDraft = errors.New("vouchers: only draft vouchers can be approved")
	// ErrAlreadyVoided indicates a repeated void.
	ErrAlreadyVoided = errors.New("vouchers: voucher already voided")
	// ErrUnknownType indicates a voucher type outside the five kinds.
	ErrUnknownType = errors.New("vouchers: unknown voucher type")
)
