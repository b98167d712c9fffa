package reports

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/ledger"
)

type fakeAccounts struct {
	rows []accounts.Account
}

func (f *fakeAccounts) List(_ context.Context, tenantID int64, filter accounts.ListFilter) ([]accounts.Account, error) {
	out := make([]accounts.Account, 0, len(f.rows))
	for _, acc := range f.rows {
		if acc.TenantID != tenantID {
			continue
		}
		if filter.Type != nil && acc.Type != *filter.Type {
			continue
		}
		if filter.ActiveOnly && !acc.IsActive {
			continue
		}
		if filter.PostableOnly && !acc.AcceptsPostings {
			continue
		}
		out = append(out, acc)
	}
	return out, nil
}

type fakeAggregator struct {
	activity map[int64]ledger.Activity
}

func (f *fakeAggregator) AccountActivity(_ context.Context, _ int64, accountID int64, _ ledger.Window) (ledger.Activity, error) {
	act, ok := f.activity[accountID]
	if !ok {
		return ledger.Activity{Debit: decimal.Zero, Credit: decimal.Zero}, nil
	}
	return act, nil
}

type fakeValuer struct {
	value decimal.Decimal
	err   error
	calls int
}

func (f *fakeValuer) Valuation(context.Context, int64) (decimal.Decimal, error) {
	f.calls++
	return f.value, f.err
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func account(id int64, code, name string, t accounts.AccountType, current bool) accounts.Account {
	side, _ := accounts.NormalSide(t)
	return accounts.Account{
		ID:              id,
		TenantID:        1,
		Code:            code,
		Name:            name,
		Type:            t,
		NormalSide:      side,
		IsCurrent:       current,
		AcceptsPostings: true,
		IsActive:        true,
	}
}

func testService(src AccountSource, agg ledger.Aggregator, inv InventoryValuer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(src, agg, inv, logger, Config{})
}

func TestTrialBalanceMinimalLedger(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1105", "Inventario de Mercancías", accounts.AccountTypeAsset, true),
		account(2, "3105", "Capital Social", accounts.AccountTypeEquity, false),
		account(3, "5105", "Gastos", accounts.AccountTypeExpense, true),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: d("500.00"), Credit: decimal.Zero},
		2: {Debit: decimal.Zero, Credit: d("500.00")},
	}}

	tb, err := testService(src, agg, nil).TrialBalance(context.Background(), 1, ledger.Window{}, nil)
	require.NoError(t, err)

	require.Len(t, tb.Rows, 2, "accounts without movement are skipped")
	require.True(t, tb.IsBalanced)
	require.True(t, tb.TotalDebit.Equal(d("500.00")))
	require.True(t, tb.TotalCredit.Equal(d("500.00")))
	require.True(t, tb.TotalDebitBalance.Equal(d("500.00")))
	require.True(t, tb.TotalCreditBalance.Equal(d("500.00")))

	require.Equal(t, "1105", tb.Rows[0].Code)
	require.True(t, tb.Rows[0].DebitBalance.Equal(d("500.00")))
	require.True(t, tb.Rows[0].CreditBalance.IsZero())
}

func TestTrialBalanceAbnormalBalanceSwitchesColumn(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1110", "Bancos", accounts.AccountTypeAsset, true),
		account(2, "2205", "Proveedores", accounts.AccountTypeLiability, true),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		// Debit-normal account driven negative: balance lands on credit.
		1: {Debit: d("30.00"), Credit: d("100.00")},
		// Credit-normal account driven negative: balance lands on debit.
		2: {Debit: d("100.00"), Credit: d("30.00")},
	}}

	tb, err := testService(src, agg, nil).TrialBalance(context.Background(), 1, ledger.Window{}, nil)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 2)

	bancos := tb.Rows[0]
	require.True(t, bancos.DebitBalance.IsZero())
	require.True(t, bancos.CreditBalance.Equal(d("70.00")))

	proveedores := tb.Rows[1]
	require.True(t, proveedores.DebitBalance.Equal(d("70.00")))
	require.True(t, proveedores.CreditBalance.IsZero())

	require.False(t, bancos.DebitBalance.IsNegative())
	require.False(t, proveedores.CreditBalance.IsNegative())
	require.True(t, tb.IsBalanced)
}

func TestTrialBalanceTypeFilter(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1110", "Bancos", accounts.AccountTypeAsset, true),
		account(2, "4135", "Ventas", accounts.AccountTypeRevenue, true),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: d("100.00"), Credit: decimal.Zero},
		2: {Debit: decimal.Zero, Credit: d("100.00")},
	}}

	assetType := accounts.AccountTypeAsset
	tb, err := testService(src, agg, nil).TrialBalance(context.Background(), 1, ledger.Window{}, &assetType)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 1)
	require.Equal(t, "1110", tb.Rows[0].Code)
	require.False(t, tb.IsBalanced, "a single-type slice does not close")
}

func TestIncomeStatementResultLabels(t *testing.T) {
	cases := []struct {
		name    string
		revenue string
		cost    string
		expense string
		net     string
		result  string
	}{
		{"profit", "1000.00", "400.00", "100.00", "500.00", ResultProfit},
		{"loss", "400.00", "300.00", "500.00", "-400.00", ResultLoss},
		{"break even", "1000.00", "400.00", "600.00", "0.00", ResultBreakEven},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &fakeAccounts{rows: []accounts.Account{
				account(1, "4135", "Ventas", accounts.AccountTypeRevenue, true),
				account(2, "6135", "Costo de Ventas", accounts.AccountTypeCost, true),
				account(3, "5105", "Gastos", accounts.AccountTypeExpense, true),
			}}
			agg := &fakeAggregator{activity: map[int64]ledger.Activity{
				1: {Debit: decimal.Zero, Credit: d(tc.revenue)},
				2: {Debit: d(tc.cost), Credit: decimal.Zero},
				3: {Debit: d(tc.expense), Credit: decimal.Zero},
			}}

			is, err := testService(src, agg, nil).IncomeStatement(context.Background(), 1, ledger.Window{})
			require.NoError(t, err)
			require.True(t, is.NetProfit.Equal(d(tc.net)), "net %s", is.NetProfit)
			require.Equal(t, tc.result, is.Result)
		})
	}
}

func TestIncomeStatementGrossProfit(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "4135", "Ventas", accounts.AccountTypeRevenue, true),
		account(2, "6135", "Costo de Ventas", accounts.AccountTypeCost, true),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: decimal.Zero, Credit: d("1000.00")},
		2: {Debit: d("400.00"), Credit: decimal.Zero},
	}}

	is, err := testService(src, agg, nil).IncomeStatement(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)
	require.True(t, is.GrossProfit.Equal(d("600.00")))
	require.True(t, is.NetProfit.Equal(d("600.00")))
	require.Len(t, is.Expense, 0)
}

func balanceSheetFixture() (*fakeAccounts, *fakeAggregator) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1110", "Bancos", accounts.AccountTypeAsset, true),
		account(2, "1540", "Maquinaria", accounts.AccountTypeAsset, false),
		account(3, "2205", "Proveedores", accounts.AccountTypeLiability, true),
		account(4, "2105", "Obligaciones Financieras", accounts.AccountTypeLiability, false),
		account(5, "3105", "Capital Social", accounts.AccountTypeEquity, false),
		account(6, "4135", "Ventas", accounts.AccountTypeRevenue, true),
		account(7, "5105", "Gastos", accounts.AccountTypeExpense, true),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: d("900.00"), Credit: decimal.Zero},
		2: {Debit: d("500.00"), Credit: decimal.Zero},
		3: {Debit: decimal.Zero, Credit: d("300.00")},
		4: {Debit: decimal.Zero, Credit: d("200.00")},
		5: {Debit: decimal.Zero, Credit: d("700.00")},
		6: {Debit: decimal.Zero, Credit: d("500.00")},
		7: {Debit: d("300.00"), Credit: decimal.Zero},
	}}
	return src, agg
}

func TestBalanceSheetClosesWithPeriodProfit(t *testing.T) {
	src, agg := balanceSheetFixture()

	bs, err := testService(src, agg, nil).BalanceSheet(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)

	require.True(t, bs.TotalAssets.Equal(d("1400.00")))
	require.True(t, bs.TotalLiabilities.Equal(d("500.00")))
	require.True(t, bs.TotalEquity.Equal(d("700.00")))
	require.True(t, bs.PeriodProfit.Equal(d("200.00")))
	require.True(t, bs.TotalEquityWithEarnings.Equal(d("900.00")))
	require.True(t, bs.TotalLiabilitiesAndEquity.Equal(d("1400.00")))
	require.True(t, bs.Difference.IsZero())
	require.True(t, bs.IsBalanced)
}

func TestBalanceSheetClassificationAndRatios(t *testing.T) {
	src, agg := balanceSheetFixture()

	bs, err := testService(src, agg, nil).BalanceSheet(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)

	require.True(t, bs.AssetsByTerm.TotalCurrent.Equal(d("900.00")))
	require.True(t, bs.AssetsByTerm.TotalNonCurrent.Equal(d("500.00")))
	require.True(t, bs.LiabilitiesByTerm.TotalCurrent.Equal(d("300.00")))
	require.True(t, bs.LiabilitiesByTerm.TotalNonCurrent.Equal(d("200.00")))

	// current 900 / 300
	require.True(t, bs.Ratios.CurrentRatio.Equal(d("3")))
	require.True(t, bs.Ratios.WorkingCapital.Equal(d("600.00")))
	// 500 / 1400 * 100 rounded to 2 places
	require.True(t, bs.Ratios.DebtRatio.Equal(d("35.71")), "got %s", bs.Ratios.DebtRatio)
	// 900 / 1400 * 100
	require.True(t, bs.Ratios.EquityRatio.Equal(d("64.29")), "got %s", bs.Ratios.EquityRatio)
	// 900 / 500
	require.True(t, bs.Ratios.EquityToDebt.Equal(d("1.8")), "got %s", bs.Ratios.EquityToDebt)
}

func TestBalanceSheetRatiosZeroDenominators(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1110", "Bancos", accounts.AccountTypeAsset, true),
		account(2, "3105", "Capital Social", accounts.AccountTypeEquity, false),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: d("100.00"), Credit: decimal.Zero},
		2: {Debit: decimal.Zero, Credit: d("100.00")},
	}}

	bs, err := testService(src, agg, nil).BalanceSheet(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)

	require.True(t, bs.Ratios.CurrentRatio.IsZero())
	require.True(t, bs.Ratios.EquityToDebt.IsZero())
	require.True(t, bs.Ratios.WorkingCapital.Equal(d("100.00")))
	require.True(t, bs.IsBalanced)
}

func TestBalanceSheetInventoryFallback(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1110", "Bancos", accounts.AccountTypeAsset, true),
		account(2, "3105", "Capital Social", accounts.AccountTypeEquity, false),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: d("100.00"), Credit: decimal.Zero},
		2: {Debit: decimal.Zero, Credit: d("250.00")},
	}}
	valuer := &fakeValuer{value: d("150.00")}

	bs, err := testService(src, agg, valuer).BalanceSheet(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)
	require.Equal(t, 1, valuer.calls)

	require.Len(t, bs.Assets, 2)
	synthetic := bs.Assets[1]
	require.Equal(t, "1105", synthetic.Code)
	require.Zero(t, synthetic.AccountID)
	require.True(t, synthetic.IsCurrent)
	require.True(t, synthetic.Amount.Equal(d("150.00")))
	require.True(t, bs.TotalAssets.Equal(d("250.00")))
	require.True(t, bs.IsBalanced)
}

func TestBalanceSheetInventoryFallbackSkippedWhenLedgerHasAccount(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1105", "Inventario de Mercancías", accounts.AccountTypeAsset, true),
		account(2, "3105", "Capital Social", accounts.AccountTypeEquity, false),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: d("400.00"), Credit: decimal.Zero},
		2: {Debit: decimal.Zero, Credit: d("400.00")},
	}}
	valuer := &fakeValuer{value: d("9999.00")}

	bs, err := testService(src, agg, valuer).BalanceSheet(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)
	require.Equal(t, 0, valuer.calls)
	require.Len(t, bs.Assets, 1)
	require.True(t, bs.TotalAssets.Equal(d("400.00")))
}

func TestBalanceSheetInventoryValuerFailureIsAbsorbed(t *testing.T) {
	src := &fakeAccounts{rows: []accounts.Account{
		account(1, "1110", "Bancos", accounts.AccountTypeAsset, true),
		account(2, "3105", "Capital Social", accounts.AccountTypeEquity, false),
	}}
	agg := &fakeAggregator{activity: map[int64]ledger.Activity{
		1: {Debit: d("100.00"), Credit: decimal.Zero},
		2: {Debit: decimal.Zero, Credit: d("100.00")},
	}}
	valuer := &fakeValuer{err: errors.New("warehouse offline")}

	bs, err := testService(src, agg, valuer).BalanceSheet(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)
	require.Len(t, bs.Assets, 1)
	require.True(t, bs.IsBalanced)
}

func TestBalanceSheetCharts(t *testing.T) {
	rows := []accounts.Account{
		account(7, "3105", "Capital Social", accounts.AccountTypeEquity, false),
	}
	activity := map[int64]ledger.Activity{
		7: {Debit: decimal.Zero, Credit: d("2100.00")},
	}
	// Six asset accounts so the chart has to drop the smallest.
	amounts := []string{"600.00", "500.00", "400.00", "300.00", "200.00", "100.00"}
	for i, amount := range amounts {
		id := int64(i + 1)
		rows = append(rows, account(id, "11"+amount[:2], "Activo "+amount, accounts.AccountTypeAsset, true))
		activity[id] = ledger.Activity{Debit: d(amount), Credit: decimal.Zero}
	}
	src := &fakeAccounts{rows: rows}
	agg := &fakeAggregator{activity: activity}

	bs, err := testService(src, agg, nil).BalanceSheet(context.Background(), 1, ledger.Window{})
	require.NoError(t, err)

	require.Len(t, bs.Charts.AssetLabels, 5)
	require.True(t, bs.Charts.AssetValues[0].Equal(d("600.00")))
	require.True(t, bs.Charts.AssetValues[4].Equal(d("200.00")))
	require.Equal(t, []string{"Activos", "Pasivos", "Patrimonio"}, bs.Charts.ComparisonLabels)
	require.True(t, bs.Charts.ComparisonValues[0].Equal(d("2100.00")))
	require.True(t, bs.Charts.ComparisonValues[1].IsZero())
	require.True(t, bs.Charts.ComparisonValues[2].Equal(d("2100.00")))
}
