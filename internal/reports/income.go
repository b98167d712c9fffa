package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/ledger"
)

// Result labels for the income statement, kept in the original reporting
// vocabulary because downstream renderers display them verbatim.
const (
	ResultProfit    = "UTILIDAD"
	ResultLoss      = "PÉRDIDA"
	ResultBreakEven = "EQUILIBRIO"
)

// IncomeStatement totals revenue, cost of sales and expenses for a period
// and derives gross and net profit.
type IncomeStatement struct {
	Revenue      []AccountLine   `json:"revenue"`
	Cost         []AccountLine   `json:"cost"`
	Expense      []AccountLine   `json:"expense"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	Result       string          `json:"result"`
}

// IncomeStatement builds the statement for the window. Accounts with a zero
// saldo are skipped; each section follows its natural side (revenue is
// credit-normal, cost and expense debit-normal).
func (s *Service) IncomeStatement(ctx context.Context, tenantID int64, window ledger.Window) (IncomeStatement, error) {
	revenue, totalRevenue, err := s.sectionSaldo(ctx, tenantID, accounts.AccountTypeRevenue, window)
	if err != nil {
		return IncomeStatement{}, err
	}
	cost, totalCost, err := s.sectionSaldo(ctx, tenantID, accounts.AccountTypeCost, window)
	if err != nil {
		return IncomeStatement{}, err
	}
	expense, totalExpense, err := s.sectionSaldo(ctx, tenantID, accounts.AccountTypeExpense, window)
	if err != nil {
		return IncomeStatement{}, err
	}

	gross := totalRevenue.Sub(totalCost)
	net := gross.Sub(totalExpense)

	return IncomeStatement{
		Revenue:      revenue,
		Cost:         cost,
		Expense:      expense,
		TotalRevenue: totalRevenue,
		TotalCost:    totalCost,
		TotalExpense: totalExpense,
		GrossProfit:  gross,
		NetProfit:    net,
		Result:       resultLabel(net),
	}, nil
}

// sectionSaldo aggregates all active accounts of one type into lines,
// skipping zero saldos. Used by both the income statement and the balance
// sheet, which share the same per-type saldo convention.
func (s *Service) sectionSaldo(ctx context.Context, tenantID int64, accountType accounts.AccountType, window ledger.Window) ([]AccountLine, decimal.Decimal, error) {
	list, err := s.accounts.List(ctx, tenantID, accounts.ListFilter{Type: &accountType, ActiveOnly: true})
	if err != nil {
		return nil, decimal.Zero, err
	}
	lines := make([]AccountLine, 0, len(list))
	total := decimal.Zero
	for _, account := range list {
		activity, err := s.aggregator.AccountActivity(ctx, tenantID, account.ID, window)
		if err != nil {
			return nil, decimal.Zero, err
		}
		saldo := ledger.Saldo(account.NormalSide, activity)
		if saldo.IsZero() {
			continue
		}
		lines = append(lines, AccountLine{
			AccountID: account.ID,
			Code:      account.Code,
			Name:      account.Name,
			Amount:    saldo,
			IsCurrent: account.IsCurrent,
		})
		total = total.Add(saldo)
	}
	return lines, total, nil
}

// resultLabel ties break-even strictly to zero: a tie is never reported as
// profit or loss.
func resultLabel(net decimal.Decimal) string {
	switch net.Sign() {
	case 1:
		return ResultProfit
	case -1:
		return ResultLoss
	default:
		return ResultBreakEven
	}
}
