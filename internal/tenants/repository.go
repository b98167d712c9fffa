package tenants

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Tenant, error)
	GetByID(ctx context.Context, id int64) (Tenant, error)
	Insert(ctx context.Context, tenant Tenant) (Tenant, error)
	Update(ctx context.Context, tenant Tenant) (Tenant, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const tenantColumns = `id, name, tax_id, address, phone, email, is_active, created_at, updated_at`

func scanTenant(row pgx.Row) (Tenant, error) {
	var t Tenant
	err := row.Scan(&t.ID, &t.Name, &t.TaxID, &t.Address, &t.Phone, &t.Email, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tenants []Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (Tenant, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id=$1`, id)
	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, ErrNotFound
		}
		return Tenant{}, err
	}
	return t, nil
}

func (r *repository) Insert(ctx context.Context, tenant Tenant) (Tenant, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO tenants (name, tax_id, address, phone, email, is_active)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`,
		tenant.Name, tenant.TaxID, tenant.Address, tenant.Phone, tenant.Email, tenant.IsActive)
	if err := row.Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_tenants_tax_id" {
			return Tenant{}, ErrTaxIDTaken
		}
		return Tenant{}, err
	}
	return tenant, nil
}

func (r *repository) Update(ctx context.Context, tenant Tenant) (Tenant, error) {
	row := r.db.QueryRow(ctx, `UPDATE tenants SET name=$2, tax_id=$3, address=$4, phone=$5, email=$6, updated_at=NOW()
WHERE id=$1 RETURNING `+tenantColumns, tenant.ID, tenant.Name, tenant.TaxID, tenant.Address, tenant.Phone, tenant.Email)
	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_tenants_tax_id" {
			return Tenant{}, ErrTaxIDTaken
		}
		return Tenant{}, err
	}
	return t, nil
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE tenants SET is_active=$2, updated_at=NOW() WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
