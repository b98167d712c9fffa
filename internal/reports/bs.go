package reports

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/ledger"
	"github.com/IntenseCord/Proyecto-POO2/internal/money"
)

// balanceEpsilon absorbs rounding in the accounting-equation check. The
// trial balance closes exactly, but here the inventory fallback and the
// period profit are derived sums, so the equation is checked against 0.01
// rather than zero. The two checks must stay separate.
var balanceEpsilon = decimal.New(1, -2)

// Classified splits one side of the balance sheet by term.
type Classified struct {
	Current         []AccountLine   `json:"current"`
	NonCurrent      []AccountLine   `json:"non_current"`
	TotalCurrent    decimal.Decimal `json:"total_current"`
	TotalNonCurrent decimal.Decimal `json:"total_non_current"`
}

// Ratios are the standard indicators derived from classified totals.
// Every division here defines a zero denominator as a zero result.
type Ratios struct {
	CurrentRatio   decimal.Decimal `json:"current_ratio"`
	WorkingCapital decimal.Decimal `json:"working_capital"`
	DebtRatio      decimal.Decimal `json:"debt_ratio"`
	EquityRatio    decimal.Decimal `json:"equity_ratio"`
	EquityToDebt   decimal.Decimal `json:"equity_to_debt"`
}

// ChartData carries chart-ready summaries: top five assets and liabilities
// by magnitude and the three-way comparison series.
type ChartData struct {
	AssetLabels      []string          `json:"asset_labels"`
	AssetValues      []decimal.Decimal `json:"asset_values"`
	LiabilityLabels  []string          `json:"liability_labels"`
	LiabilityValues  []decimal.Decimal `json:"liability_values"`
	ComparisonLabels []string          `json:"comparison_labels"`
	ComparisonValues []decimal.Decimal `json:"comparison_values"`
}

// BalanceSheet is the full statement of financial position.
type BalanceSheet struct {
	Assets                    []AccountLine   `json:"assets"`
	Liabilities               []AccountLine   `json:"liabilities"`
	Equity                    []AccountLine   `json:"equity"`
	AssetsByTerm              Classified      `json:"assets_by_term"`
	LiabilitiesByTerm         Classified      `json:"liabilities_by_term"`
	PeriodProfit              decimal.Decimal `json:"period_profit"`
	TotalAssets               decimal.Decimal `json:"total_assets"`
	TotalLiabilities          decimal.Decimal `json:"total_liabilities"`
	TotalEquity               decimal.Decimal `json:"total_equity"`
	TotalEquityWithEarnings   decimal.Decimal `json:"total_equity_with_earnings"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
	Difference                decimal.Decimal `json:"difference"`
	IsBalanced                bool            `json:"is_balanced"`
	Ratios                    Ratios          `json:"ratios"`
	Charts                    ChartData       `json:"charts"`
}

// BalanceSheet builds the statement of financial position for the window.
func (s *Service) BalanceSheet(ctx context.Context, tenantID int64, window ledger.Window) (BalanceSheet, error) {
	assets, totalAssets, err := s.sectionSaldo(ctx, tenantID, accounts.AccountTypeAsset, window)
	if err != nil {
		return BalanceSheet{}, err
	}
	assets, totalAssets = s.withPhysicalInventory(ctx, tenantID, assets, totalAssets)

	liabilities, totalLiabilities, err := s.sectionSaldo(ctx, tenantID, accounts.AccountTypeLiability, window)
	if err != nil {
		return BalanceSheet{}, err
	}
	equity, totalEquity, err := s.sectionSaldo(ctx, tenantID, accounts.AccountTypeEquity, window)
	if err != nil {
		return BalanceSheet{}, err
	}

	income, err := s.IncomeStatement(ctx, tenantID, window)
	if err != nil {
		return BalanceSheet{}, err
	}
	periodProfit := income.NetProfit
	equityWithEarnings := totalEquity.Add(periodProfit)

	liabilitiesAndEquity := totalLiabilities.Add(equityWithEarnings)
	difference := totalAssets.Sub(liabilitiesAndEquity)

	assetsByTerm := classify(assets)
	liabilitiesByTerm := classify(liabilities)

	return BalanceSheet{
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		AssetsByTerm:              assetsByTerm,
		LiabilitiesByTerm:         liabilitiesByTerm,
		PeriodProfit:              periodProfit,
		TotalAssets:               totalAssets,
		TotalLiabilities:          totalLiabilities,
		TotalEquity:               totalEquity,
		TotalEquityWithEarnings:   equityWithEarnings,
		TotalLiabilitiesAndEquity: liabilitiesAndEquity,
		Difference:                difference,
		IsBalanced:                difference.Abs().LessThan(balanceEpsilon),
		Ratios:                    computeRatios(assetsByTerm, liabilitiesByTerm, totalAssets, totalLiabilities, equityWithEarnings),
		Charts:                    buildCharts(assets, liabilities, totalAssets, totalLiabilities, equityWithEarnings),
	}, nil
}

// withPhysicalInventory appends the merchandise valuation as a synthetic
// asset line when the ledger shows no inventory account. Any failure of the
// collaborator is logged and swallowed: the statement must never die on the
// fallback.
func (s *Service) withPhysicalInventory(ctx context.Context, tenantID int64, assets []AccountLine, totalAssets decimal.Decimal) ([]AccountLine, decimal.Decimal) {
	if s.inventory == nil {
		return assets, totalAssets
	}
	for _, line := range assets {
		if line.Code == s.cfg.InventoryAccountCode {
			return assets, totalAssets
		}
	}
	value, err := s.inventory.Valuation(ctx, tenantID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("inventory valuation unavailable", slog.Any("error", err))
		}
		return assets, totalAssets
	}
	if !value.IsPositive() {
		return assets, totalAssets
	}
	assets = append(assets, AccountLine{
		Code:      s.cfg.InventoryAccountCode,
		Name:      "Inventario de Mercancías (Físico)",
		Amount:    money.Round(value),
		IsCurrent: true,
	})
	return assets, totalAssets.Add(money.Round(value))
}

func classify(lines []AccountLine) Classified {
	c := Classified{
		Current:         make([]AccountLine, 0, len(lines)),
		NonCurrent:      make([]AccountLine, 0),
		TotalCurrent:    decimal.Zero,
		TotalNonCurrent: decimal.Zero,
	}
	for _, line := range lines {
		if line.IsCurrent {
			c.Current = append(c.Current, line)
			c.TotalCurrent = c.TotalCurrent.Add(line.Amount)
		} else {
			c.NonCurrent = append(c.NonCurrent, line)
			c.TotalNonCurrent = c.TotalNonCurrent.Add(line.Amount)
		}
	}
	return c
}

func computeRatios(assets, liabilities Classified, totalAssets, totalLiabilities, totalEquity decimal.Decimal) Ratios {
	return Ratios{
		CurrentRatio:   money.Ratio(assets.TotalCurrent, liabilities.TotalCurrent),
		WorkingCapital: assets.TotalCurrent.Sub(liabilities.TotalCurrent),
		DebtRatio:      money.Percent(totalLiabilities, totalAssets),
		EquityRatio:    money.Percent(totalEquity, totalAssets),
		EquityToDebt:   money.Ratio(totalEquity, totalLiabilities),
	}
}

func buildCharts(assets, liabilities []AccountLine, totalAssets, totalLiabilities, totalEquity decimal.Decimal) ChartData {
	assetLabels, assetValues := topFive(assets)
	liabilityLabels, liabilityValues := topFive(liabilities)
	return ChartData{
		AssetLabels:      assetLabels,
		AssetValues:      assetValues,
		LiabilityLabels:  liabilityLabels,
		LiabilityValues:  liabilityValues,
		ComparisonLabels: []string{"Activos", "Pasivos", "Patrimonio"},
		ComparisonValues: []decimal.Decimal{totalAssets, totalLiabilities, totalEquity},
	}
}

func topFive(lines []AccountLine) ([]string, []decimal.Decimal) {
	sorted := append([]AccountLine(nil), lines...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.Abs().GreaterThan(sorted[j].Amount.Abs())
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	labels := make([]string, 0, len(sorted))
	values := make([]decimal.Decimal, 0, len(sorted))
	for _, line := range sorted {
		labels = append(labels, truncateLabel(line.Name, 30))
		values = append(values, line.Amount)
	}
	return labels, values
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
