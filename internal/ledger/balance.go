package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
)

// Saldo returns the signed balance of an account relative to its natural
// side: debit - credit for debit-normal accounts, credit - debit for
// credit-normal ones. A positive saldo is a normal balance.
func Saldo(side accounts.BalanceSide, activity Activity) decimal.Decimal {
	if side == accounts.SideDebit {
		return activity.Debit.Sub(activity.Credit)
	}
	return activity.Credit.Sub(activity.Debit)
}

// SplitBalance resolves activity into the two trial-balance columns. An
// abnormal balance (negative saldo) moves to the opposite column instead of
// rendering as a negative number; both columns are always >= 0.
func SplitBalance(side accounts.BalanceSide, activity Activity) (debitSide, creditSide decimal.Decimal) {
	raw := Saldo(side, activity)
	if side == accounts.SideDebit {
		if raw.IsNegative() {
			return decimal.Zero, raw.Abs()
		}
		return raw, decimal.Zero
	}
	if raw.IsNegative() {
		return raw.Abs(), decimal.Zero
	}
	return decimal.Zero, raw
}
