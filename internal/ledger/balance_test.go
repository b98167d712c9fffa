package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
)

func activity(debit, credit string) Activity {
	return Activity{
		Debit:  decimal.RequireFromString(debit),
		Credit: decimal.RequireFromString(credit),
	}
}

func TestSaldoFollowsNormalSide(t *testing.T) {
	a := activity("100.00", "30.00")

	require.True(t, Saldo(accounts.SideDebit, a).Equal(decimal.RequireFromString("70.00")))
	require.True(t, Saldo(accounts.SideCredit, a).Equal(decimal.RequireFromString("-70.00")))
}

func TestSplitBalanceNormal(t *testing.T) {
	debitCol, creditCol := SplitBalance(accounts.SideDebit, activity("100.00", "30.00"))
	require.True(t, debitCol.Equal(decimal.RequireFromString("70.00")))
	require.True(t, creditCol.IsZero())

	debitCol, creditCol = SplitBalance(accounts.SideCredit, activity("30.00", "100.00"))
	require.True(t, debitCol.IsZero())
	require.True(t, creditCol.Equal(decimal.RequireFromString("70.00")))
}

func TestSplitBalanceAbnormalSwitchesColumn(t *testing.T) {
	// An overdrawn debit-normal account shows on the credit column, never
	// as a negative debit.
	debitCol, creditCol := SplitBalance(accounts.SideDebit, activity("30.00", "100.00"))
	require.True(t, debitCol.IsZero())
	require.True(t, creditCol.Equal(decimal.RequireFromString("70.00")))

	debitCol, creditCol = SplitBalance(accounts.SideCredit, activity("100.00", "30.00"))
	require.True(t, debitCol.Equal(decimal.RequireFromString("70.00")))
	require.True(t, creditCol.IsZero())
}

func TestSplitBalanceZeroActivity(t *testing.T) {
	debitCol, creditCol := SplitBalance(accounts.SideDebit, Activity{})
	require.True(t, debitCol.IsZero())
	require.True(t, creditCol.IsZero())
}
