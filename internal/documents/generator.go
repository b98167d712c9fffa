package documents

import (
	"context"
	"errors"
	"log/slog"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/vouchers"
)

// VoucherPort is the slice of the voucher service documents post through.
type VoucherPort interface {
	Create(ctx context.Context, input vouchers.CreateInput) (vouchers.Voucher, error)
	Approve(ctx context.Context, tenantID, id, actorID int64) (vouchers.Voucher, error)
}

// AccountLookup resolves chart-of-accounts codes; satisfied by
// accounts.Repository.
type AccountLookup interface {
	GetByCode(ctx context.Context, tenantID int64, code string) (accounts.Account, error)
}

// Generator posts documents to the ledger.
type Generator struct {
	accounts AccountLookup
	vouchers VoucherPort
	logger   *slog.Logger
}

func NewGenerator(accountLookup AccountLookup, voucherPort VoucherPort, logger *slog.Logger) *Generator {
	return &Generator{accounts: accountLookup, vouchers: voucherPort, logger: logger}
}

// GenerateVoucher validates the document, resolves its account codes for
// the tenant, and posts an approved voucher. The same flow serves every
// document kind.
func (g *Generator) GenerateVoucher(ctx context.Context, tenantID int64, doc Document, actorID int64) (vouchers.Voucher, error) {
	if err := doc.Validate(); err != nil {
		return vouchers.Voucher{}, err
	}

	entries := doc.Entries()
	lines := make([]vouchers.PostingInput, 0, len(entries))
	for _, entry := range entries {
		account, err := g.accounts.GetByCode(ctx, tenantID, entry.AccountCode)
		if err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				g.logger.Warn("document posting account missing",
					slog.Int64("tenant_id", tenantID),
					slog.String("code", entry.AccountCode))
				return vouchers.Voucher{}, ErrAccountMissing
			}
			return vouchers.Voucher{}, err
		}
		lines = append(lines, vouchers.PostingInput{
			AccountID:   account.ID,
			Description: doc.Description(),
			Debit:       entry.Debit,
			Credit:      entry.Credit,
		})
	}

	voucher, err := g.vouchers.Create(ctx, vouchers.CreateInput{
		TenantID:    tenantID,
		Type:        doc.VoucherType(),
		Date:        doc.Date(),
		Description: doc.Description(),
		CreatedBy:   actorID,
		Lines:       lines,
	})
	if err != nil {
		return vouchers.Voucher{}, err
	}
	voucher, err = g.vouchers.Approve(ctx, tenantID, voucher.ID, actorID)
	if err != nil {
		return vouchers.Voucher{}, err
	}
	g.logger.Info("document posted",
		slog.Int64("tenant_id", tenantID),
		slog.String("document", doc.Description()),
		slog.Int64("voucher_id", voucher.ID))
	return voucher, nil
}
