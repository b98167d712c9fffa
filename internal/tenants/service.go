package tenants

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Service wraps the repository with input normalisation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput carries the company registration fields.
type CreateInput struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
	Email   string
}

func (in *CreateInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.TaxID = strings.TrimSpace(in.TaxID)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Name == "" {
		return errors.New("tenants: name required")
	}
	if in.TaxID == "" {
		return errors.New("tenants: tax id required")
	}
	return nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Tenant, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Get(ctx context.Context, id int64) (Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Tenant, error) {
	if err := input.normalize(); err != nil {
		return Tenant{}, err
	}
	tenant, err := s.repo.Insert(ctx, Tenant{
		Name:     input.Name,
		TaxID:    input.TaxID,
		Address:  input.Address,
		Phone:    input.Phone,
		Email:    input.Email,
		IsActive: true,
	})
	if err != nil {
		return Tenant{}, err
	}
	s.logger.Info("tenant created", slog.Int64("tenant_id", tenant.ID), slog.String("name", tenant.Name))
	return tenant, nil
}

func (s *Service) Update(ctx context.Context, id int64, input CreateInput) (Tenant, error) {
	if err := input.normalize(); err != nil {
		return Tenant{}, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Tenant{}, err
	}
	current.Name = input.Name
	current.TaxID = input.TaxID
	current.Address = input.Address
	current.Phone = input.Phone
	current.Email = input.Email
	return s.repo.Update(ctx, current)
}

// Deactivate hides a tenant from listings. Ledger rows are kept; nothing is
// ever hard-deleted once postings may reference it.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("tenant deactivated", slog.Int64("tenant_id", id))
	return nil
}
