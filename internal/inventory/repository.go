package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/platform/db"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	ActiveOnly   bool
	BelowMinimum bool
}

type Repository interface {
	ListProducts(ctx context.Context, tenantID int64, filter ProductFilter) ([]Product, error)
	GetProduct(ctx context.Context, tenantID, id int64) (Product, error)
	GetProductBySKU(ctx context.Context, tenantID int64, sku string) (Product, error)
	InsertProduct(ctx context.Context, product Product) (Product, error)
	UpdateProduct(ctx context.Context, product Product) (Product, error)
	SetProductActive(ctx context.Context, tenantID, id int64, active bool) error
	ListMovements(ctx context.Context, tenantID, productID int64) ([]Movement, error)
	AttachVoucher(ctx context.Context, tenantID, movementID, voucherID int64) error
	Valuation(ctx context.Context, tenantID int64) (decimal.Decimal, error)
	WithTx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository exposes the stock mutation steps that must commit together.
type TxRepository interface {
	LockProduct(ctx context.Context, tenantID, id int64) (Product, error)
	UpdateStock(ctx context.Context, tenantID, id int64, quantity, unitCost decimal.Decimal) error
	InsertMovement(ctx context.Context, movement Movement) (Movement, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const productColumns = `id, tenant_id, sku, name, category, quantity, unit_cost, sale_price, min_stock, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.TenantID, &p.SKU, &p.Name, &p.Category, &p.Quantity, &p.UnitCost, &p.SalePrice, &p.MinStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *repository) ListProducts(ctx context.Context, tenantID int64, filter ProductFilter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id=$1`
	if filter.ActiveOnly {
		query += ` AND is_active`
	}
	if filter.BelowMinimum {
		query += ` AND quantity <= min_stock`
	}
	query += ` ORDER BY sku ASC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) GetProduct(ctx context.Context, tenantID, id int64) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) GetProductBySKU(ctx context.Context, tenantID int64, sku string) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id=$1 AND sku=$2`, tenantID, sku)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) InsertProduct(ctx context.Context, product Product) (Product, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO products (tenant_id, sku, name, category, quantity, unit_cost, sale_price, min_stock, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id, created_at, updated_at`,
		product.TenantID, product.SKU, product.Name, product.Category, product.Quantity, product.UnitCost, product.SalePrice, product.MinStock, product.IsActive)
	if err := row.Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_products_tenant_sku" {
			return Product{}, ErrSKUTaken
		}
		return Product{}, err
	}
	return product, nil
}

func (r *repository) UpdateProduct(ctx context.Context, product Product) (Product, error) {
	row := r.db.QueryRow(ctx, `UPDATE products SET name=$3, category=$4, sale_price=$5, min_stock=$6, updated_at=NOW()
WHERE tenant_id=$1 AND id=$2 RETURNING `+productColumns, product.TenantID, product.ID, product.Name, product.Category, product.SalePrice, product.MinStock)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) SetProductActive(ctx context.Context, tenantID, id int64, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE products SET is_active=$3, updated_at=NOW() WHERE tenant_id=$1 AND id=$2`, tenantID, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

const movementColumns = `id, tenant_id, product_id, type, quantity, unit_cost, amount, voucher_id, note, created_by, created_at`

func (r *repository) ListMovements(ctx context.Context, tenantID, productID int64) ([]Movement, error) {
	rows, err := r.db.Query(ctx, `SELECT `+movementColumns+` FROM inventory_movements
WHERE tenant_id=$1 AND product_id=$2 ORDER BY created_at DESC, id DESC`, tenantID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var movements []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost, &m.Amount, &m.VoucherID, &m.Note, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *repository) AttachVoucher(ctx context.Context, tenantID, movementID, voucherID int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE inventory_movements SET voucher_id=$3
WHERE tenant_id=$1 AND id=$2`, tenantID, movementID, voucherID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("inventory: movement not found")
	}
	return nil
}

// Valuation prices stock on hand as quantity times weighted unit cost.
func (r *repository) Valuation(ctx context.Context, tenantID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(quantity * unit_cost), 0) FROM products
WHERE tenant_id=$1 AND is_active`, tenantID).Scan(&total)
	return total, err
}

func (r *repository) WithTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) LockProduct(ctx context.Context, tenantID, id int64) (Product, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products
WHERE tenant_id=$1 AND id=$2 FOR UPDATE`, tenantID, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *txRepository) UpdateStock(ctx context.Context, tenantID, id int64, quantity, unitCost decimal.Decimal) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE products SET quantity=$3, unit_cost=$4, updated_at=NOW()
WHERE tenant_id=$1 AND id=$2`, tenantID, id, quantity, unitCost)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *txRepository) InsertMovement(ctx context.Context, movement Movement) (Movement, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO inventory_movements (tenant_id, product_id, type, quantity, unit_cost, amount, voucher_id, note, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id, created_at`,
		movement.TenantID, movement.ProductID, movement.Type, movement.Quantity, movement.UnitCost, movement.Amount, movement.VoucherID, movement.Note, movement.CreatedBy)
	if err := row.Scan(&movement.ID, &movement.CreatedAt); err != nil {
		return Movement{}, err
	}
	return movement, nil
}
