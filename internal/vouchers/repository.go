package vouchers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ListFilter narrows voucher listings.
type ListFilter struct {
	Status *VoucherStatus
	Type   *VoucherType
	Limit  int
}

// Repository encapsulates voucher persistence. Mutations run through WithTx
// so approval can compare-and-set the status and recompute totals on one
// snapshot.
type Repository interface {
	List(ctx context.Context, tenantID int64, filter ListFilter) ([]Voucher, error)
	GetWithLines(ctx context.Context, tenantID, id int64) (Voucher, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes methods available within a transaction.
type TxRepository interface {
	InsertVoucher(ctx context.Context, in CreateInput) (Voucher, error)
	InsertLines(ctx context.Context, voucherID int64, lines []PostingInput) error
	GetVoucher(ctx context.Context, tenantID, id int64) (Voucher, error)
	SumLines(ctx context.Context, voucherID int64) (debit, credit decimal.Decimal, err error)
	PostableAccounts(ctx context.Context, tenantID int64, accountIDs []int64) (map[int64]bool, error)
	// ApproveIfDraft transitions DRAFT -> APPROVED and stores the totals.
	// Returns false when the voucher was not in DRAFT, making concurrent
	// approvals race-safe: exactly one wins.
	ApproveIfDraft(ctx context.Context, tenantID, id int64, totalDebit, totalCredit decimal.Decimal, approvedAt time.Time) (bool, error)
	// VoidUnlessVoided transitions to VOIDED; returns false when already VOIDED.
	VoidUnlessVoided(ctx context.Context, tenantID, id int64) (bool, error)
	DeleteDraftLines(ctx context.Context, voucherID int64) error
	DeleteDraft(ctx context.Context, tenantID, id int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const voucherColumns = `id, tenant_id, number, type, date, description, status, total_debit, total_credit, created_by, created_at, approved_at`

func scanVoucher(row pgx.Row) (Voucher, error) {
	var v Voucher
	err := row.Scan(&v.ID, &v.TenantID, &v.Number, &v.Type, &v.Date, &v.Description, &v.Status, &v.TotalDebit, &v.TotalCredit, &v.CreatedBy, &v.CreatedAt, &v.ApprovedAt)
	return v, err
}

func (r *repository) List(ctx context.Context, tenantID int64, filter ListFilter) ([]Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE tenant_id=$1`
	args := []any{tenantID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status=$2`
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += ` AND type=$` + itoa(len(args))
	}
	query += ` ORDER BY date DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vouchers []Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

func (r *repository) GetWithLines(ctx context.Context, tenantID, id int64) (Voucher, error) {
	v, err := scanVoucher(r.db.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE tenant_id=$1 AND id=$2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, ErrNotFound
		}
		return Voucher{}, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, voucher_id, account_id, description, debit, credit, position
FROM voucher_lines WHERE voucher_id=$1 ORDER BY position ASC, id ASC`, id)
	if err != nil {
		return Voucher{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var line Posting
		if err := rows.Scan(&line.ID, &line.VoucherID, &line.AccountID, &line.Description, &line.Debit, &line.Credit, &line.Position); err != nil {
			return Voucher{}, err
		}
		v.Lines = append(v.Lines, line)
	}
	return v, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	wrapper := &txRepository{tx: tx}
	if err := fn(ctx, wrapper); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertVoucher(ctx context.Context, in CreateInput) (Voucher, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO vouchers (tenant_id, type, date, description, status, total_debit, total_credit, created_by)
VALUES ($1,$2,$3,$4,'DRAFT',0,0,$5) RETURNING id, number, created_at`, in.TenantID, in.Type, in.Date, in.Description, in.CreatedBy)
	v := Voucher{
		TenantID:    in.TenantID,
		Type:        in.Type,
		Date:        in.Date,
		Description: in.Description,
		Status:      StatusDraft,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		CreatedBy:   in.CreatedBy,
	}
	if err := row.Scan(&v.ID, &v.Number, &v.CreatedAt); err != nil {
		return Voucher{}, err
	}
	return v, nil
}

func (r *txRepository) InsertLines(ctx context.Context, voucherID int64, lines []PostingInput) error {
	for idx, line := range lines {
		if _, err := r.tx.Exec(ctx, `INSERT INTO voucher_lines (voucher_id, account_id, description, debit, credit, position)
VALUES ($1,$2,$3,$4,$5,$6)`, voucherID, line.AccountID, line.Description, line.Debit, line.Credit, idx+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) GetVoucher(ctx context.Context, tenantID, id int64) (Voucher, error) {
	v, err := scanVoucher(r.tx.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE tenant_id=$1 AND id=$2 FOR UPDATE`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, ErrNotFound
		}
		return Voucher{}, err
	}
	return v, nil
}

func (r *txRepository) SumLines(ctx context.Context, voucherID int64) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.tx.QueryRow(ctx, `SELECT COALESCE(SUM(debit),0), COALESCE(SUM(credit),0) FROM voucher_lines WHERE voucher_id=$1`, voucherID).
		Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return debit, credit, nil
}

func (r *txRepository) PostableAccounts(ctx context.Context, tenantID int64, accountIDs []int64) (map[int64]bool, error) {
	rows, err := r.tx.Query(ctx, `SELECT id, accepts_postings AND is_active FROM accounts WHERE tenant_id=$1 AND id = ANY($2)`, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[int64]bool, len(accountIDs))
	for rows.Next() {
		var id int64
		var postable bool
		if err := rows.Scan(&id, &postable); err != nil {
			return nil, err
		}
		result[id] = postable
	}
	return result, rows.Err()
}

func (r *txRepository) ApproveIfDraft(ctx context.Context, tenantID, id int64, totalDebit, totalCredit decimal.Decimal, approvedAt time.Time) (bool, error) {
	cmd, err := r.tx.Exec(ctx, `UPDATE vouchers SET status='APPROVED', total_debit=$3, total_credit=$4, approved_at=$5
WHERE tenant_id=$1 AND id=$2 AND status='DRAFT'`, tenantID, id, totalDebit, totalCredit, approvedAt)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *txRepository) VoidUnlessVoided(ctx context.Context, tenantID, id int64) (bool, error) {
	cmd, err := r.tx.Exec(ctx, `UPDATE vouchers SET status='VOIDED' WHERE tenant_id=$1 AND id=$2 AND status <> 'VOIDED'`, tenantID, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *txRepository) DeleteDraftLines(ctx context.Context, voucherID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM voucher_lines WHERE voucher_id=$1`, voucherID)
	return err
}

func (r *txRepository) DeleteDraft(ctx context.Context, tenantID, id int64) (bool, error) {
	cmd, err := r.tx.Exec(ctx, `DELETE FROM vouchers WHERE tenant_id=$1 AND id=$2 AND status='DRAFT'`, tenantID, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
