package accounts

import "time"

// AccountType enumerates chart-of-accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
	AccountTypeCost      AccountType = "COST"
)

// BalanceSide is the side on which an account naturally increases.
type BalanceSide string

const (
	SideDebit  BalanceSide = "DEBIT"
	SideCredit BalanceSide = "CREDIT"
)

// normalSides is the single source of truth for the type -> normal side
// rule. The side is never stored independently of the type.
var normalSides = map[AccountType]BalanceSide{
	AccountTypeAsset:     SideDebit,
	AccountTypeExpense:   SideDebit,
	AccountTypeCost:      SideDebit,
	AccountTypeLiability: SideCredit,
	AccountTypeEquity:    SideCredit,
	AccountTypeRevenue:   SideCredit,
}

// NormalSide returns the natural balance side for an account type and
// whether the type is known.
func NormalSide(t AccountType) (BalanceSide, bool) {
	side, ok := normalSides[t]
	return side, ok
}

// Valid reports whether t is one of the six account types.
func (t AccountType) Valid() bool {
	_, ok := normalSides[t]
	return ok
}

// Account models one line of a tenant's chart of accounts.
type Account struct {
	ID              int64
	TenantID        int64
	Code            string
	Name            string
	Type            AccountType
	NormalSide      BalanceSide
	ParentID        *int64
	Level           int
	IsCurrent       bool
	AcceptsPostings bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
