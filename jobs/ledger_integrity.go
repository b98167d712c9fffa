package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// IntegrityMetrics counts tenants found out of balance; satisfied by
// observability.Metrics.
type IntegrityMetrics interface {
	IntegrityFailure()
}

// LedgerIntegrityJob re-derives per-tenant totals over approved vouchers
// and flags any tenant whose debits and credits do not close. Approval
// enforces balance per voucher; this job guards against anything that
// slipped past it, including manual data fixes.
type LedgerIntegrityJob struct {
	db      *pgxpool.Pool
	logger  *slog.Logger
	metrics IntegrityMetrics
}

func NewLedgerIntegrityJob(db *pgxpool.Pool, logger *slog.Logger, metrics IntegrityMetrics) *LedgerIntegrityJob {
	return &LedgerIntegrityJob{db: db, logger: logger, metrics: metrics}
}

// Handle processes TaskLedgerIntegrity tasks.
func (j *LedgerIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload LedgerIntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	query := `SELECT v.tenant_id, COALESCE(SUM(vl.debit),0), COALESCE(SUM(vl.credit),0)
FROM voucher_lines vl JOIN vouchers v ON v.id = vl.voucher_id
WHERE v.status='APPROVED'`
	args := []any{}
	if payload.TenantID != 0 {
		query += ` AND v.tenant_id=$1`
		args = append(args, payload.TenantID)
	}
	query += ` GROUP BY v.tenant_id`

	rows, err := j.db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	checked, broken := 0, 0
	for rows.Next() {
		var tenantID int64
		var debit, credit decimal.Decimal
		if err := rows.Scan(&tenantID, &debit, &credit); err != nil {
			return err
		}
		checked++
		if !debit.Equal(credit) {
			broken++
			if j.metrics != nil {
				j.metrics.IntegrityFailure()
			}
			j.logger.Error("approved ledger out of balance",
				slog.Int64("tenant_id", tenantID),
				slog.String("total_debit", debit.String()),
				slog.String("total_credit", credit.String()),
				slog.String("difference", debit.Sub(credit).String()))
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	j.logger.Info("ledger integrity check finished",
		slog.Int("tenants_checked", checked),
		slog.Int("tenants_unbalanced", broken))
	return nil
}
