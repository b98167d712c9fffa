package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/ledger"
)

// TrialBalanceRow is one postable account with activity in the period.
type TrialBalanceRow struct {
	AccountID     int64           `json:"account_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	DebitBalance  decimal.Decimal `json:"debit_balance"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
}

// TrialBalance lists every account with movement plus column totals.
type TrialBalance struct {
	Rows               []TrialBalanceRow `json:"rows"`
	TotalDebit         decimal.Decimal   `json:"total_debit"`
	TotalCredit        decimal.Decimal   `json:"total_credit"`
	TotalDebitBalance  decimal.Decimal   `json:"total_debit_balance"`
	TotalCreditBalance decimal.Decimal   `json:"total_credit_balance"`
	// IsBalanced double-checks the same invariant two ways: totals of raw
	// movement and totals of the split balances must each close exactly.
	IsBalanced bool `json:"is_balanced"`
}

// TrialBalance aggregates every active postable account in code order,
// skipping accounts without movement. It never corrects an unbalanced
// ledger; it surfaces IsBalanced=false for the caller to flag.
func (s *Service) TrialBalance(ctx context.Context, tenantID int64, window ledger.Window, typeFilter *accounts.AccountType) (TrialBalance, error) {
	list, err := s.accounts.List(ctx, tenantID, accounts.ListFilter{
		Type:         typeFilter,
		ActiveOnly:   true,
		PostableOnly: true,
	})
	if err != nil {
		return TrialBalance{}, err
	}

	tb := TrialBalance{
		Rows:               make([]TrialBalanceRow, 0, len(list)),
		TotalDebit:         decimal.Zero,
		TotalCredit:        decimal.Zero,
		TotalDebitBalance:  decimal.Zero,
		TotalCreditBalance: decimal.Zero,
	}
	for _, account := range list {
		activity, err := s.aggregator.AccountActivity(ctx, tenantID, account.ID, window)
		if err != nil {
			return TrialBalance{}, err
		}
		if activity.IsZero() {
			continue
		}
		debitSide, creditSide := ledger.SplitBalance(account.NormalSide, activity)
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			AccountID:     account.ID,
			Code:          account.Code,
			Name:          account.Name,
			Debit:         activity.Debit,
			Credit:        activity.Credit,
			DebitBalance:  debitSide,
			CreditBalance: creditSide,
		})
		tb.TotalDebit = tb.TotalDebit.Add(activity.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(activity.Credit)
		tb.TotalDebitBalance = tb.TotalDebitBalance.Add(debitSide)
		tb.TotalCreditBalance = tb.TotalCreditBalance.Add(creditSide)
	}

	tb.IsBalanced = tb.TotalDebit.Equal(tb.TotalCredit) && tb.TotalDebitBalance.Equal(tb.TotalCreditBalance)
	return tb, nil
}
