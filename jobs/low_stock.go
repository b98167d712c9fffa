package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LowStockJob scans active products sitting at or under their minimum
// stock and logs each so operators can restock before sales stall.
type LowStockJob struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewLowStockJob(db *pgxpool.Pool, logger *slog.Logger) *LowStockJob {
	return &LowStockJob{db: db, logger: logger}
}

// Handle processes TaskLowStockScan tasks.
func (j *LowStockJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload LowStockPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	query := `SELECT tenant_id, sku, name, quantity, min_stock FROM products
WHERE is_active AND quantity <= min_stock`
	args := []any{}
	if payload.TenantID != 0 {
		query += ` AND tenant_id=$1`
		args = append(args, payload.TenantID)
	}
	query += ` ORDER BY tenant_id, sku`

	rows, err := j.db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	flagged := 0
	for rows.Next() {
		var tenantID int64
		var sku, name string
		var quantity, minStock decimal.Decimal
		if err := rows.Scan(&tenantID, &sku, &name, &quantity, &minStock); err != nil {
			return err
		}
		flagged++
		j.logger.Warn("product at or below minimum stock",
			slog.Int64("tenant_id", tenantID),
			slog.String("sku", sku),
			slog.String("name", name),
			slog.String("quantity", quantity.String()),
			slog.String("min_stock", minStock.String()))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	j.logger.Info("low stock scan finished", slog.Int("products_flagged", flagged))
	return nil
}
