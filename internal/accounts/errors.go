package accounts

import "errors"

var (
	// ErrNotFound indicates the account does not exist for the tenant.
	ErrNotFound = errors.New("accounts: account not found")
	// ErrCodeTaken indicates the code is already used within the tenant.
	ErrCodeTaken = errors.New("accounts: code already in use")
	// ErrUnknownType indicates an account type outside the six categories.
	ErrUnknownType = errors.New("accounts: unknown account type")
	// ErrParentNotFound indicates the referenced parent does not exist.
	ErrParentNotFound = errors.New("accounts: parent account not found")
	// ErrHasActiveChildren blocks deactivation while children are active.
	ErrHasActiveChildren = errors.New("accounts: account has active children")
	// ErrHasPostings blocks deactivation of accounts with ledger activity.
	ErrHasPostings = errors.New("accounts: account has postings")
)
