package vouchers

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ReportInvalidator is notified whenever approved ledger contents change so
// cached statements can be rebuilt. A nil invalidator is a no-op.
type ReportInvalidator interface {
	Bust(ctx context.Context)
}

// Observer receives lifecycle counters; satisfied by observability.Metrics.
// A nil observer is a no-op.
type Observer interface {
	VoucherAction(action string)
}

type Service struct {
	repo    Repository
	logger  *slog.Logger
	reports ReportInvalidator
	metrics Observer
	now     func() time.Time
}

func NewService(repo Repository, logger *slog.Logger, reports ReportInvalidator, metrics Observer) *Service {
	return &Service{repo: repo, logger: logger, reports: reports, metrics: metrics, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) List(ctx context.Context, tenantID int64, filter ListFilter) ([]Voucher, error) {
	return s.repo.List(ctx, tenantID, filter)
}

func (s *Service) Get(ctx context.Context, tenantID, id int64) (Voucher, error) {
	return s.repo.GetWithLines(ctx, tenantID, id)
}

// Create opens a DRAFT voucher with its posting lines. Lines must each
// carry exactly one positive side and reference postable accounts; the
// draft as a whole may still be unbalanced.
func (s *Service) Create(ctx context.Context, input CreateInput) (Voucher, error) {
	if err := input.Validate(); err != nil {
		return Voucher{}, err
	}
	var voucher Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if len(input.Lines) > 0 {
			ids := make([]int64, 0, len(input.Lines))
			for _, line := range input.Lines {
				ids = append(ids, line.AccountID)
			}
			postable, err := tx.PostableAccounts(ctx, input.TenantID, ids)
			if err != nil {
				return err
			}
			for idx, line := range input.Lines {
				ok, known := postable[line.AccountID]
				if !known {
					return fmt.Errorf("line %d: %w", idx, ErrAccountUnknown)
				}
				if !ok {
					return fmt.Errorf("line %d: %w", idx, ErrAccountNotPostable)
				}
			}
		}
		inserted, err := tx.InsertVoucher(ctx, input)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, input.Lines); err != nil {
			return err
		}
		voucher = inserted
		voucher.Lines = toPostings(inserted.ID, input.Lines)
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	s.count("create")
	return voucher, nil
}

// Approve recomputes totals from the stored lines and transitions
// DRAFT -> APPROVED. The balance check and the compare-and-set run in one
// transaction: a rejected voucher keeps its state untouched, and of two
// concurrent approvals only one can win.
func (s *Service) Approve(ctx context.Context, tenantID, id, actorID int64) (Voucher, error) {
	var voucher Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetVoucher(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if current.Status != StatusDraft {
			return ErrNotDraft
		}
		debit, credit, err := tx.SumLines(ctx, current.ID)
		if err != nil {
			return err
		}
		if !debit.Equal(credit) {
			return ErrUnbalanced
		}
		if debit.IsZero() {
			return ErrEmpty
		}
		approvedAt := s.now()
		ok, err := tx.ApproveIfDraft(ctx, tenantID, id, debit, credit, approvedAt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotDraft
		}
		voucher = current
		voucher.Status = StatusApproved
		voucher.TotalDebit = debit
		voucher.TotalCredit = credit
		voucher.ApprovedAt = &approvedAt
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	s.count("approve")
	s.bust(ctx, "voucher.approve", voucher.ID, actorID)
	return voucher, nil
}

// Void marks the voucher VOIDED. Nothing is deleted; voided vouchers are
// simply excluded from every aggregation from then on.
func (s *Service) Void(ctx context.Context, input VoidInput) (Voucher, error) {
	var voucher Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetVoucher(ctx, input.TenantID, input.VoucherID)
		if err != nil {
			return err
		}
		if current.Status == StatusVoided {
			return ErrAlreadyVoided
		}
		ok, err := tx.VoidUnlessVoided(ctx, input.TenantID, input.VoucherID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyVoided
		}
		voucher = current
		voucher.Status = StatusVoided
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	s.count("void")
	s.bust(ctx, "voucher.void", voucher.ID, input.ActorID)
	return voucher, nil
}

// DeleteDraft removes a DRAFT voucher and its lines. Approved and voided
// vouchers are immutable history and cannot be deleted.
func (s *Service) DeleteDraft(ctx context.Context, tenantID, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetVoucher(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if current.Status != StatusDraft {
			return ErrNotDraft
		}
		if err := tx.DeleteDraftLines(ctx, id); err != nil {
			return err
		}
		ok, err := tx.DeleteDraft(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotDraft
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.count("delete")
	return nil
}

func (s *Service) count(action string) {
	if s.metrics != nil {
		s.metrics.VoucherAction(action)
	}
}

func (s *Service) bust(ctx context.Context, action string, voucherID, actorID int64) {
	if s.reports != nil {
		s.reports.Bust(ctx)
	}
	if s.logger != nil {
		s.logger.Info(action, slog.Int64("voucher_id", voucherID), slog.Int64("actor_id", actorID))
	}
}

func toPostings(voucherID int64, lines []PostingInput) []Posting {
	out := make([]Posting, 0, len(lines))
	for idx, line := range lines {
		out = append(out, Posting{
			VoucherID:   voucherID,
			AccountID:   line.AccountID,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Position:    idx + 1,
		})
	}
	return out
}
