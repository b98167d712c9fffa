package inventory

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/money"
	"github.com/IntenseCord/Proyecto-POO2/internal/vouchers"
)

// VoucherPort is the slice of the voucher service movements post through.
type VoucherPort interface {
	Create(ctx context.Context, input vouchers.CreateInput) (vouchers.Voucher, error)
	Approve(ctx context.Context, tenantID, id, actorID int64) (vouchers.Voucher, error)
}

// AccountLookup resolves chart-of-accounts codes; satisfied by
// accounts.Repository.
type AccountLookup interface {
	GetByCode(ctx context.Context, tenantID int64, code string) (accounts.Account, error)
}

// Observer receives movement counters; satisfied by observability.Metrics.
type Observer interface {
	MovementPosted(movementType string)
}

// Config names the ledger accounts movements post against.
type Config struct {
	// InventoryCode is the merchandise asset account.
	InventoryCode string
	// CounterpartCode is credited on entries (bank or cash).
	CounterpartCode string
	// CostOfSalesCode is debited on exits.
	CostOfSalesCode string
}

func (c *Config) applyDefaults() {
	if c.InventoryCode == "" {
		c.InventoryCode = "1105"
	}
	if c.CounterpartCode == "" {
		c.CounterpartCode = "1110"
	}
	if c.CostOfSalesCode == "" {
		c.CostOfSalesCode = "6135"
	}
}

// Service coordinates stock changes and their ledger postings.
type Service struct {
	repo     Repository
	accounts AccountLookup
	vouchers VoucherPort
	logger   *slog.Logger
	metrics  Observer
	cfg      Config
	now      func() time.Time
}

func NewService(repo Repository, accountLookup AccountLookup, voucherPort VoucherPort, logger *slog.Logger, metrics Observer, cfg Config) *Service {
	cfg.applyDefaults()
	return &Service{
		repo:     repo,
		accounts: accountLookup,
		vouchers: voucherPort,
		logger:   logger,
		metrics:  metrics,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithNow overrides the clock. Test hook.
func (s *Service) WithNow(now func() time.Time) {
	s.now = now
}

// ProductInput carries product registration fields.
type ProductInput struct {
	SKU       string
	Name      string
	Category  string
	UnitCost  decimal.Decimal
	SalePrice decimal.Decimal
	MinStock  decimal.Decimal
}

func (s *Service) ListProducts(ctx context.Context, tenantID int64, filter ProductFilter) ([]Product, error) {
	return s.repo.ListProducts(ctx, tenantID, filter)
}

func (s *Service) GetProduct(ctx context.Context, tenantID, id int64) (Product, error) {
	return s.repo.GetProduct(ctx, tenantID, id)
}

func (s *Service) CreateProduct(ctx context.Context, tenantID int64, input ProductInput) (Product, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)
	if input.SKU == "" || input.Name == "" {
		return Product{}, errors.New("inventory: sku and name required")
	}
	if input.UnitCost.IsNegative() {
		return Product{}, ErrInvalidUnitCost
	}
	if input.SalePrice.IsNegative() {
		return Product{}, ErrInvalidSalePrice
	}
	if input.MinStock.IsNegative() {
		return Product{}, errors.New("inventory: min stock must not be negative")
	}
	return s.repo.InsertProduct(ctx, Product{
		TenantID:  tenantID,
		SKU:       input.SKU,
		Name:      input.Name,
		Category:  strings.TrimSpace(input.Category),
		Quantity:  decimal.Zero,
		UnitCost:  input.UnitCost,
		SalePrice: input.SalePrice,
		MinStock:  input.MinStock,
		IsActive:  true,
	})
}

func (s *Service) UpdateProduct(ctx context.Context, tenantID, id int64, input ProductInput) (Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return Product{}, errors.New("inventory: name required")
	}
	if input.SalePrice.IsNegative() {
		return Product{}, ErrInvalidSalePrice
	}
	if input.MinStock.IsNegative() {
		return Product{}, errors.New("inventory: min stock must not be negative")
	}
	return s.repo.UpdateProduct(ctx, Product{
		TenantID:  tenantID,
		ID:        id,
		Name:      input.Name,
		Category:  strings.TrimSpace(input.Category),
		SalePrice: input.SalePrice,
		MinStock:  input.MinStock,
	})
}

func (s *Service) DeactivateProduct(ctx context.Context, tenantID, id int64) error {
	return s.repo.SetProductActive(ctx, tenantID, id, false)
}

func (s *Service) ListMovements(ctx context.Context, tenantID, productID int64) ([]Movement, error) {
	return s.repo.ListMovements(ctx, tenantID, productID)
}

// Valuation prices stock on hand for the balance-sheet fallback.
func (s *Service) Valuation(ctx context.Context, tenantID int64) (decimal.Decimal, error) {
	total, err := s.repo.Valuation(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round(total), nil
}

// LowStock lists active products at or under their minimum.
func (s *Service) LowStock(ctx context.Context, tenantID int64) ([]Product, error) {
	return s.repo.ListProducts(ctx, tenantID, ProductFilter{ActiveOnly: true, BelowMinimum: true})
}

// MovementInput describes one stock change request.
type MovementInput struct {
	TenantID  int64
	ProductID int64
	Type      MovementType
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Note      string
	ActorID   int64
}

// RegisterMovement applies a stock change and, for entries and exits,
// posts its voucher. Entries debit merchandise against the counterpart
// account; exits move the cost of the goods out of merchandise into cost
// of sales; adjustments set the counted quantity and post nothing. The
// stock change commits first: a failed voucher generation is logged and
// the movement stays recorded with a nil VoucherID.
func (s *Service) RegisterMovement(ctx context.Context, input MovementInput) (Movement, error) {
	if !input.Type.Valid() {
		return Movement{}, ErrUnknownMovement
	}
	if input.Type == MovementAdjust {
		if input.Quantity.IsNegative() {
			return Movement{}, ErrInvalidQuantity
		}
	} else if !input.Quantity.IsPositive() {
		return Movement{}, ErrInvalidQuantity
	}
	if input.Type == MovementEntry && input.UnitCost.IsNegative() {
		return Movement{}, ErrInvalidUnitCost
	}

	product, err := s.repo.GetProduct(ctx, input.TenantID, input.ProductID)
	if err != nil {
		return Movement{}, err
	}

	unitCost := input.UnitCost
	switch input.Type {
	case MovementExit:
		unitCost = product.UnitCost
		if product.Quantity.LessThan(input.Quantity) {
			return Movement{}, ErrInsufficientStock
		}
	case MovementAdjust:
		unitCost = product.UnitCost
	}
	amount := money.Round(input.Quantity.Mul(unitCost))

	movement := Movement{
		TenantID:  input.TenantID,
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		UnitCost:  unitCost,
		Amount:    amount,
		Note:      input.Note,
		CreatedBy: input.ActorID,
	}
	err = s.repo.WithTx(ctx, func(tx TxRepository) error {
		locked, err := tx.LockProduct(ctx, input.TenantID, input.ProductID)
		if err != nil {
			return err
		}
		newQty, newCost, err := applyMovement(locked, input.Type, input.Quantity, unitCost)
		if err != nil {
			return err
		}
		if err := tx.UpdateStock(ctx, input.TenantID, input.ProductID, newQty, newCost); err != nil {
			return err
		}
		movement, err = tx.InsertMovement(ctx, movement)
		return err
	})
	if err != nil {
		return Movement{}, err
	}

	if input.Type != MovementAdjust {
		movement = s.attachVoucher(ctx, input, product, movement, amount)
	}
	if s.metrics != nil {
		s.metrics.MovementPosted(string(input.Type))
	}
	s.logger.Info("inventory movement posted",
		slog.Int64("tenant_id", input.TenantID),
		slog.Int64("product_id", input.ProductID),
		slog.String("type", string(input.Type)))
	return movement, nil
}

// attachVoucher generates and links the accounting entry for an already
// committed movement. Failures never undo the movement; they are logged
// and the movement keeps a nil VoucherID.
func (s *Service) attachVoucher(ctx context.Context, input MovementInput, product Product, movement Movement, amount decimal.Decimal) Movement {
	voucher, err := s.postVoucher(ctx, input, product, amount)
	if err != nil {
		s.logger.Error("movement voucher generation failed",
			slog.Int64("movement_id", movement.ID),
			slog.Any("error", err))
		return movement
	}
	if err := s.repo.AttachVoucher(ctx, input.TenantID, movement.ID, voucher.ID); err != nil {
		s.logger.Error("movement voucher link failed",
			slog.Int64("movement_id", movement.ID),
			slog.Int64("voucher_id", voucher.ID),
			slog.Any("error", err))
		return movement
	}
	movement.VoucherID = &voucher.ID
	return movement
}

// applyMovement computes the post-movement quantity and weighted average
// cost. Exits keep the average, entries fold the new lot in, adjustments
// replace the quantity with the physical count.
func applyMovement(product Product, movementType MovementType, qty, unitCost decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	switch movementType {
	case MovementExit:
		if product.Quantity.LessThan(qty) {
			return decimal.Zero, decimal.Zero, ErrInsufficientStock
		}
		return product.Quantity.Sub(qty), product.UnitCost, nil
	case MovementAdjust:
		return qty, product.UnitCost, nil
	}
	newQty := product.Quantity.Add(qty)
	if newQty.IsZero() {
		return newQty, product.UnitCost, nil
	}
	carried := product.Quantity.Mul(product.UnitCost)
	added := qty.Mul(unitCost)
	newCost := carried.Add(added).DivRound(newQty, 4)
	return newQty, newCost, nil
}

func (s *Service) postVoucher(ctx context.Context, input MovementInput, product Product, amount decimal.Decimal) (vouchers.Voucher, error) {
	inventoryAcc, err := s.accounts.GetByCode(ctx, input.TenantID, s.cfg.InventoryCode)
	if err != nil {
		return vouchers.Voucher{}, s.missingAccount(s.cfg.InventoryCode, err)
	}

	var debitID, creditID int64
	var description string
	switch input.Type {
	case MovementEntry:
		counterpart, err := s.accounts.GetByCode(ctx, input.TenantID, s.cfg.CounterpartCode)
		if err != nil {
			return vouchers.Voucher{}, s.missingAccount(s.cfg.CounterpartCode, err)
		}
		debitID, creditID = inventoryAcc.ID, counterpart.ID
		description = "Entrada de inventario: " + product.Name
	case MovementExit:
		costAcc, err := s.accounts.GetByCode(ctx, input.TenantID, s.cfg.CostOfSalesCode)
		if err != nil {
			return vouchers.Voucher{}, s.missingAccount(s.cfg.CostOfSalesCode, err)
		}
		debitID, creditID = costAcc.ID, inventoryAcc.ID
		description = "Salida de inventario: " + product.Name
	}

	voucher, err := s.vouchers.Create(ctx, vouchers.CreateInput{
		TenantID:    input.TenantID,
		Type:        vouchers.VoucherTypeAdjustment,
		Date:        s.now(),
		Description: description,
		CreatedBy:   input.ActorID,
		Lines: []vouchers.PostingInput{
			{AccountID: debitID, Description: description, Debit: amount, Credit: decimal.Zero},
			{AccountID: creditID, Description: description, Debit: decimal.Zero, Credit: amount},
		},
	})
	if err != nil {
		return vouchers.Voucher{}, err
	}
	return s.vouchers.Approve(ctx, input.TenantID, voucher.ID, input.ActorID)
}

func (s *Service) missingAccount(code string, err error) error {
	if errors.Is(err, accounts.ErrNotFound) {
		s.logger.Warn("inventory posting account missing", slog.String("code", code))
		return ErrAccountMissing
	}
	return err
}
