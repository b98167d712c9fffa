package vouchers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	vouchers map[int64]Voucher
	lines    map[int64][]Posting
	postable map[int64]bool
	nextID   int64
	busts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vouchers: map[int64]Voucher{},
		lines:    map[int64][]Posting{},
		postable: map[int64]bool{1: true, 2: true, 3: false},
	}
}

func (f *fakeStore) List(_ context.Context, tenantID int64, filter ListFilter) ([]Voucher, error) {
	var out []Voucher
	for _, v := range f.vouchers {
		if v.TenantID != tenantID {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && v.Type != *filter.Type {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeStore) GetWithLines(_ context.Context, tenantID, id int64) (Voucher, error) {
	v, ok := f.vouchers[id]
	if !ok || v.TenantID != tenantID {
		return Voucher{}, ErrNotFound
	}
	v.Lines = f.lines[id]
	return v, nil
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, f)
}

func (f *fakeStore) InsertVoucher(_ context.Context, in CreateInput) (Voucher, error) {
	f.nextID++
	v := Voucher{
		ID:          f.nextID,
		TenantID:    in.TenantID,
		Number:      f.nextID,
		Type:        in.Type,
		Date:        in.Date,
		Description: in.Description,
		Status:      StatusDraft,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   time.Now(),
	}
	f.vouchers[v.ID] = v
	return v, nil
}

func (f *fakeStore) InsertLines(_ context.Context, voucherID int64, lines []PostingInput) error {
	f.lines[voucherID] = toPostings(voucherID, lines)
	return nil
}

func (f *fakeStore) GetVoucher(_ context.Context, tenantID, id int64) (Voucher, error) {
	v, ok := f.vouchers[id]
	if !ok || v.TenantID != tenantID {
		return Voucher{}, ErrNotFound
	}
	return v, nil
}

func (f *fakeStore) SumLines(_ context.Context, voucherID int64) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, line := range f.lines[voucherID] {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit, nil
}

func (f *fakeStore) PostableAccounts(_ context.Context, _ int64, accountIDs []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range accountIDs {
		if postable, known := f.postable[id]; known {
			out[id] = postable
		}
	}
	return out, nil
}

func (f *fakeStore) ApproveIfDraft(_ context.Context, tenantID, id int64, totalDebit, totalCredit decimal.Decimal, approvedAt time.Time) (bool, error) {
	v, ok := f.vouchers[id]
	if !ok || v.TenantID != tenantID || v.Status != StatusDraft {
		return false, nil
	}
	v.Status = StatusApproved
	v.TotalDebit = totalDebit
	v.TotalCredit = totalCredit
	v.ApprovedAt = &approvedAt
	f.vouchers[id] = v
	return true, nil
}

func (f *fakeStore) VoidUnlessVoided(_ context.Context, tenantID, id int64) (bool, error) {
	v, ok := f.vouchers[id]
	if !ok || v.TenantID != tenantID || v.Status == StatusVoided {
		return false, nil
	}
	v.Status = StatusVoided
	f.vouchers[id] = v
	return true, nil
}

func (f *fakeStore) DeleteDraftLines(_ context.Context, voucherID int64) error {
	delete(f.lines, voucherID)
	return nil
}

func (f *fakeStore) DeleteDraft(_ context.Context, tenantID, id int64) (bool, error) {
	v, ok := f.vouchers[id]
	if !ok || v.TenantID != tenantID || v.Status != StatusDraft {
		return false, nil
	}
	delete(f.vouchers, id)
	return true, nil
}

func (f *fakeStore) Bust(context.Context) {
	f.busts++
}

type fakeObserver struct {
	actions []string
}

func (f *fakeObserver) VoucherAction(action string) {
	f.actions = append(f.actions, action)
}

func newService(store *fakeStore) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, logger, store, nil)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createInput(lines ...PostingInput) CreateInput {
	return CreateInput{
		TenantID:    1,
		Type:        VoucherTypeIncome,
		Date:        time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Description: "Venta de contado",
		CreatedBy:   9,
		Lines:       lines,
	}
}

func TestCreateDraftAllowsUnbalancedLines(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	v, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("100.00")},
		PostingInput{AccountID: 2, Credit: d("40.00")},
	))
	require.NoError(t, err)
	require.Equal(t, StatusDraft, v.Status)
	require.Len(t, v.Lines, 2)
	require.Equal(t, 0, store.busts, "drafts never touch the cache")
}

func TestCreateRejectsBadLines(t *testing.T) {
	svc := newService(newFakeStore())

	_, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("10.00"), Credit: d("10.00")},
	))
	require.ErrorIs(t, err, ErrLineBothSides)

	_, err = svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1},
	))
	require.ErrorIs(t, err, ErrLineNoAmount)

	_, err = svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("-5.00")},
	))
	require.ErrorIs(t, err, ErrLineNegative)

	_, err = svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 404, Debit: d("5.00")},
	))
	require.ErrorIs(t, err, ErrAccountUnknown)

	_, err = svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 3, Debit: d("5.00")},
	))
	require.ErrorIs(t, err, ErrAccountNotPostable)
}

func TestApproveBalancedVoucher(t *testing.T) {
	store := newFakeStore()
	observer := &fakeObserver{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, logger, store, observer)
	approvedAt := time.Date(2026, 5, 3, 10, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return approvedAt })

	v, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("250.00")},
		PostingInput{AccountID: 2, Credit: d("250.00")},
	))
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), 1, v.ID, 9)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status)
	require.True(t, approved.TotalDebit.Equal(d("250.00")))
	require.True(t, approved.TotalCredit.Equal(d("250.00")))
	require.NotNil(t, approved.ApprovedAt)
	require.Equal(t, approvedAt, *approved.ApprovedAt)
	require.Equal(t, 1, store.busts, "approval invalidates cached reports")
	require.Equal(t, []string{"create", "approve"}, observer.actions)
}

func TestApproveRejectsUnbalanced(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	v, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("100.00")},
		PostingInput{AccountID: 2, Credit: d("99.99")},
	))
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), 1, v.ID, 9)
	require.ErrorIs(t, err, ErrUnbalanced)
	require.Equal(t, StatusDraft, store.vouchers[v.ID].Status, "rejected approval leaves the draft untouched")
	require.Equal(t, 0, store.busts)
}

func TestApproveRejectsEmpty(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	v, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), 1, v.ID, 9)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestApproveIsNotRepeatable(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	v, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("50.00")},
		PostingInput{AccountID: 2, Credit: d("50.00")},
	))
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), 1, v.ID, 9)
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), 1, v.ID, 9)
	require.ErrorIs(t, err, ErrNotDraft)
}

func TestVoidFromDraftAndApproved(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	draft, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("10.00")},
		PostingInput{AccountID: 2, Credit: d("10.00")},
	))
	require.NoError(t, err)

	voided, err := svc.Void(context.Background(), VoidInput{TenantID: 1, VoucherID: draft.ID, ActorID: 9})
	require.NoError(t, err)
	require.Equal(t, StatusVoided, voided.Status)

	_, err = svc.Void(context.Background(), VoidInput{TenantID: 1, VoucherID: draft.ID, ActorID: 9})
	require.ErrorIs(t, err, ErrAlreadyVoided)

	approved, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("10.00")},
		PostingInput{AccountID: 2, Credit: d("10.00")},
	))
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), 1, approved.ID, 9)
	require.NoError(t, err)

	_, err = svc.Void(context.Background(), VoidInput{TenantID: 1, VoucherID: approved.ID, ActorID: 9})
	require.NoError(t, err)
	require.Equal(t, StatusVoided, store.vouchers[approved.ID].Status)
}

func TestDeleteDraftOnly(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	v, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("10.00")},
		PostingInput{AccountID: 2, Credit: d("10.00")},
	))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDraft(context.Background(), 1, v.ID))
	_, err = svc.Get(context.Background(), 1, v.ID)
	require.ErrorIs(t, err, ErrNotFound)

	v, err = svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("10.00")},
		PostingInput{AccountID: 2, Credit: d("10.00")},
	))
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), 1, v.ID, 9)
	require.NoError(t, err)

	err = svc.DeleteDraft(context.Background(), 1, v.ID)
	require.ErrorIs(t, err, ErrNotDraft)
}

func TestTenantIsolation(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	v, err := svc.Create(context.Background(), createInput(
		PostingInput{AccountID: 1, Debit: d("10.00")},
		PostingInput{AccountID: 2, Credit: d("10.00")},
	))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, v.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Approve(context.Background(), 2, v.ID, 9)
	require.ErrorIs(t, err, ErrNotFound)
}
