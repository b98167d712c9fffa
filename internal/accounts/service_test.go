package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	accounts map[int64]Account
	children map[int64]bool
	postings map[int64]bool
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: map[int64]Account{},
		children: map[int64]bool{},
		postings: map[int64]bool{},
	}
}

func (f *fakeRepo) List(_ context.Context, tenantID int64, filter ListFilter) ([]Account, error) {
	var out []Account
	for _, a := range f.accounts {
		if a.TenantID != tenantID {
			continue
		}
		if filter.Type != nil && a.Type != *filter.Type {
			continue
		}
		if filter.ActiveOnly && !a.IsActive {
			continue
		}
		if filter.PostableOnly && !a.AcceptsPostings {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, tenantID, id int64) (Account, error) {
	a, ok := f.accounts[id]
	if !ok || a.TenantID != tenantID {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetByCode(_ context.Context, tenantID int64, code string) (Account, error) {
	for _, a := range f.accounts {
		if a.TenantID == tenantID && a.Code == code {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (f *fakeRepo) Insert(_ context.Context, account Account) (Account, error) {
	for _, existing := range f.accounts {
		if existing.TenantID == account.TenantID && existing.Code == account.Code {
			return Account{}, ErrCodeTaken
		}
	}
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeRepo) SetActive(_ context.Context, tenantID, id int64, active bool) error {
	a, ok := f.accounts[id]
	if !ok || a.TenantID != tenantID {
		return ErrNotFound
	}
	a.IsActive = active
	f.accounts[id] = a
	return nil
}

func (f *fakeRepo) HasActiveChildren(_ context.Context, _, id int64) (bool, error) {
	return f.children[id], nil
}

func (f *fakeRepo) HasPostings(_ context.Context, _, id int64) (bool, error) {
	return f.postings[id], nil
}

func validInput() CreateInput {
	return CreateInput{
		TenantID:        1,
		Code:            "1110",
		Name:            "Bancos",
		Type:            AccountTypeAsset,
		Level:           4,
		IsCurrent:       true,
		AcceptsPostings: true,
	}
}

func TestCreateDerivesNormalSide(t *testing.T) {
	cases := []struct {
		accountType AccountType
		side        BalanceSide
	}{
		{AccountTypeAsset, SideDebit},
		{AccountTypeExpense, SideDebit},
		{AccountTypeCost, SideDebit},
		{AccountTypeLiability, SideCredit},
		{AccountTypeEquity, SideCredit},
		{AccountTypeRevenue, SideCredit},
	}
	for _, tc := range cases {
		t.Run(string(tc.accountType), func(t *testing.T) {
			svc := NewService(newFakeRepo())
			in := validInput()
			in.Type = tc.accountType
			created, err := svc.Create(context.Background(), in)
			require.NoError(t, err)
			require.Equal(t, tc.side, created.NormalSide)
			require.True(t, created.IsActive)
		})
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := NewService(newFakeRepo())
	in := validInput()
	in.Type = "GOODWILL"
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestCreateTrimsAndRequiresCodeAndName(t *testing.T) {
	svc := NewService(newFakeRepo())

	in := validInput()
	in.Code = "  1110  "
	in.Name = "  Bancos  "
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "1110", created.Code)
	require.Equal(t, "Bancos", created.Name)

	in = validInput()
	in.Code = "   "
	_, err = svc.Create(context.Background(), in)
	require.Error(t, err)

	in = validInput()
	in.Name = ""
	_, err = svc.Create(context.Background(), in)
	require.Error(t, err)
}

func TestCreateChecksParent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	parent, err := svc.Create(context.Background(), CreateInput{
		TenantID: 1, Code: "11", Name: "Disponible", Type: AccountTypeAsset, Level: 2,
	})
	require.NoError(t, err)

	in := validInput()
	in.ParentID = &parent.ID
	child, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, parent.ID, *child.ParentID)

	missing := int64(404)
	in = validInput()
	in.Code = "1120"
	in.ParentID = &missing
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrParentNotFound)
}

func TestCreateRejectsDuplicateCodePerTenant(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validInput())
	require.ErrorIs(t, err, ErrCodeTaken)

	other := validInput()
	other.TenantID = 2
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err, "codes are unique per tenant, not globally")
}

func TestDeactivate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), 1, created.ID))
	got, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err, "deactivation never hard-deletes")
	require.False(t, got.IsActive)
}

func TestDeactivateBlockedByChildrenOrPostings(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	repo.children[created.ID] = true
	require.ErrorIs(t, svc.Deactivate(context.Background(), 1, created.ID), ErrHasActiveChildren)

	repo.children[created.ID] = false
	repo.postings[created.ID] = true
	require.ErrorIs(t, svc.Deactivate(context.Background(), 1, created.ID), ErrHasPostings)

	require.True(t, repo.accounts[created.ID].IsActive)
}

func TestDeactivateUnknownAccount(t *testing.T) {
	svc := NewService(newFakeRepo())
	require.ErrorIs(t, svc.Deactivate(context.Background(), 1, 99), ErrNotFound)
}
