package vouchers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IntenseCord/Proyecto-POO2/internal/shared"
)

func listVouchers(t *testing.T, h *Handler, target string) []Voucher {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(shared.ContextWithTenant(req.Context(), 1))
	rec := httptest.NewRecorder()

	h.List(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Vouchers []Voucher `json:"vouchers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Vouchers
}

func TestListFiltersByStatusAndType(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc)

	income := createInput(
		PostingInput{AccountID: 1, Debit: d("100.00")},
		PostingInput{AccountID: 2, Credit: d("100.00")},
	)
	created, err := svc.Create(context.Background(), income)
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), 1, created.ID, 9)
	require.NoError(t, err)

	expense := income
	expense.Type = VoucherTypeExpense
	_, err = svc.Create(context.Background(), expense)
	require.NoError(t, err)

	all := listVouchers(t, handler, "/api/v1/vouchers/")
	require.Len(t, all, 2)

	byType := listVouchers(t, handler, "/api/v1/vouchers/?type=EXPENSE")
	require.Len(t, byType, 1)
	require.Equal(t, VoucherTypeExpense, byType[0].Type)

	byStatus := listVouchers(t, handler, "/api/v1/vouchers/?status=APPROVED")
	require.Len(t, byStatus, 1)
	require.Equal(t, created.ID, byStatus[0].ID)

	both := listVouchers(t, handler, "/api/v1/vouchers/?status=APPROVED&type=EXPENSE")
	require.Empty(t, both)
}
