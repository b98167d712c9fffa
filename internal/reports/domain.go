// Package reports derives financial statements from the ledger: trial
// balance, income statement, and balance sheet. Every build is a
// self-contained read over approved postings; nothing here mutates state.
package reports

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/ledger"
)

// AccountLine is one account's contribution to a statement section.
type AccountLine struct {
	AccountID int64           `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	IsCurrent bool            `json:"is_current"`
}

// AccountSource lists chart-of-accounts rows; satisfied by accounts.Repository.
type AccountSource interface {
	List(ctx context.Context, tenantID int64, filter accounts.ListFilter) ([]accounts.Account, error)
}

// InventoryValuer prices the physical inventory of a tenant. It is an
// optional collaborator: the balance sheet falls back to it only when the
// ledger carries no merchandise account, and absorbs its failure.
type InventoryValuer interface {
	Valuation(ctx context.Context, tenantID int64) (decimal.Decimal, error)
}

// Config carries the few knobs the statement engine needs.
type Config struct {
	// InventoryAccountCode is the merchandise inventory account the
	// balance-sheet fallback looks for. Defaults to 1105.
	InventoryAccountCode string
}

// Service builds the three statements.
type Service struct {
	accounts   AccountSource
	aggregator ledger.Aggregator
	inventory  InventoryValuer
	logger     *slog.Logger
	cfg        Config
}

func NewService(accountSource AccountSource, aggregator ledger.Aggregator, inventory InventoryValuer, logger *slog.Logger, cfg Config) *Service {
	if cfg.InventoryAccountCode == "" {
		cfg.InventoryAccountCode = "1105"
	}
	return &Service{accounts: accountSource, aggregator: aggregator, inventory: inventory, logger: logger, cfg: cfg}
}
