// Package ledger holds the read-side primitives every financial statement
// is built on: summing approved postings per account, and resolving the
// resulting activity onto an account's natural balance side.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Activity is the aggregated movement of one account: the sum of debit
// postings and the sum of credit postings from approved vouchers only.
type Activity struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// IsZero reports whether the account had no movement in the window.
func (a Activity) IsZero() bool {
	return a.Debit.IsZero() && a.Credit.IsZero()
}

// Window bounds an aggregation by voucher date, inclusive on both ends.
// A nil bound leaves that side unbounded.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Aggregator computes per-account activity. Implementations are pure
// reads: no side effects, and an account without postings yields
// Activity{0.00, 0.00}, never an error.
type Aggregator interface {
	AccountActivity(ctx context.Context, tenantID, accountID int64, window Window) (Activity, error)
}

type aggregator struct {
	db *pgxpool.Pool
}

// NewAggregator returns the postgres-backed Aggregator.
func NewAggregator(db *pgxpool.Pool) Aggregator {
	return &aggregator{db: db}
}

func (a *aggregator) AccountActivity(ctx context.Context, tenantID, accountID int64, window Window) (Activity, error) {
	query, args := activityQuery(tenantID, accountID, window)
	var activity Activity
	if err := a.db.QueryRow(ctx, query, args...).Scan(&activity.Debit, &activity.Credit); err != nil {
		return Activity{}, err
	}
	return activity, nil
}

// activityQuery sums postings from approved vouchers only, so voided and
// draft vouchers never reach a statement. Both date bounds are inclusive.
func activityQuery(tenantID, accountID int64, window Window) (string, []any) {
	query := `SELECT COALESCE(SUM(vl.debit),0), COALESCE(SUM(vl.credit),0)
FROM voucher_lines vl
JOIN vouchers v ON v.id = vl.voucher_id
WHERE v.tenant_id=$1 AND vl.account_id=$2 AND v.status='APPROVED'`
	args := []any{tenantID, accountID}
	if window.From != nil {
		args = append(args, *window.From)
		query += fmt.Sprintf(` AND v.date >= $%d`, len(args))
	}
	if window.To != nil {
		args = append(args, *window.To)
		query += fmt.Sprintf(` AND v.date <= $%d`, len(args))
	}
	return query, args
}
