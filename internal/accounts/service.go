package accounts

import (
	"context"
	"errors"
	"strings"
)

// CreateInput groups the fields callers provide for a new account. The
// normal side is intentionally absent: it is derived from the type.
type CreateInput struct {
	TenantID        int64
	Code            string
	Name            string
	Type            AccountType
	ParentID        *int64
	Level           int
	IsCurrent       bool
	AcceptsPostings bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, tenantID int64, filter ListFilter) ([]Account, error) {
	return s.repo.List(ctx, tenantID, filter)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (Account, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *Service) GetByCode(ctx context.Context, tenantID int64, code string) (Account, error) {
	return s.repo.GetByCode(ctx, tenantID, code)
}

// Create validates the input, derives the normal side from the type and
// inserts the account as active.
func (s *Service) Create(ctx context.Context, in CreateInput) (Account, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return Account{}, errors.New("accounts: code required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return Account{}, errors.New("accounts: name required")
	}
	side, ok := NormalSide(in.Type)
	if !ok {
		return Account{}, ErrUnknownType
	}
	if in.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, in.TenantID, *in.ParentID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return Account{}, ErrParentNotFound
			}
			return Account{}, err
		}
	}
	level := in.Level
	if level <= 0 {
		level = 1
	}
	return s.repo.Insert(ctx, Account{
		TenantID:        in.TenantID,
		Code:            code,
		Name:            strings.TrimSpace(in.Name),
		Type:            in.Type,
		NormalSide:      side,
		ParentID:        in.ParentID,
		Level:           level,
		IsCurrent:       in.IsCurrent,
		AcceptsPostings: in.AcceptsPostings,
		IsActive:        true,
	})
}

// Deactivate marks an account inactive. Accounts are never hard-deleted;
// deactivation is refused while active children or any postings exist.
func (s *Service) Deactivate(ctx context.Context, tenantID, id int64) error {
	if _, err := s.repo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	children, err := s.repo.HasActiveChildren(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if children {
		return ErrHasActiveChildren
	}
	posted, err := s.repo.HasPostings(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if posted {
		return ErrHasPostings
	}
	return s.repo.SetActive(ctx, tenantID, id, false)
}
