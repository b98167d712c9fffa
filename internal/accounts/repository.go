package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListFilter narrows List results.
type ListFilter struct {
	Type         *AccountType
	ActiveOnly   bool
	PostableOnly bool
}

type Repository interface {
	List(ctx context.Context, tenantID int64, filter ListFilter) ([]Account, error)
	GetByID(ctx context.Context, tenantID, id int64) (Account, error)
	GetByCode(ctx context.Context, tenantID int64, code string) (Account, error)
	Insert(ctx context.Context, account Account) (Account, error)
	SetActive(ctx context.Context, tenantID, id int64, active bool) error
	HasActiveChildren(ctx context.Context, tenantID, id int64) (bool, error)
	HasPostings(ctx context.Context, tenantID, id int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const accountColumns = `id, tenant_id, code, name, type, normal_side, parent_id, level, is_current, accepts_postings, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.TenantID, &a.Code, &a.Name, &a.Type, &a.NormalSide, &a.ParentID, &a.Level, &a.IsCurrent, &a.AcceptsPostings, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) List(ctx context.Context, tenantID int64, filter ListFilter) ([]Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id=$1`
	args := []any{tenantID}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += ` AND type=$2`
	}
	if filter.ActiveOnly {
		query += ` AND is_active`
	}
	if filter.PostableOnly {
		query += ` AND accepts_postings`
	}
	query += ` ORDER BY code ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, tenantID, id int64) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) GetByCode(ctx context.Context, tenantID int64, code string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE tenant_id=$1 AND code=$2`, tenantID, code)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) Insert(ctx context.Context, account Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO accounts (tenant_id, code, name, type, normal_side, parent_id, level, is_current, accepts_postings, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id, created_at, updated_at`,
		account.TenantID, account.Code, account.Name, account.Type, account.NormalSide, account.ParentID, account.Level, account.IsCurrent, account.AcceptsPostings, account.IsActive)
	if err := row.Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_accounts_tenant_code" {
			return Account{}, ErrCodeTaken
		}
		return Account{}, err
	}
	return account, nil
}

func (r *repository) SetActive(ctx context.Context, tenantID, id int64, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET is_active=$3, updated_at=NOW() WHERE tenant_id=$1 AND id=$2`, tenantID, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) HasActiveChildren(ctx context.Context, tenantID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE tenant_id=$1 AND parent_id=$2 AND is_active)`, tenantID, id).Scan(&exists)
	return exists, err
}

func (r *repository) HasPostings(ctx context.Context, tenantID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
SELECT 1 FROM voucher_lines vl JOIN vouchers v ON v.id = vl.voucher_id
WHERE v.tenant_id=$1 AND vl.account_id=$2)`, tenantID, id).Scan(&exists)
	return exists, err
}
