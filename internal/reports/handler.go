package reports

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/ledger"
	"github.com/IntenseCord/Proyecto-POO2/internal/platform/httpx"
	"github.com/IntenseCord/Proyecto-POO2/internal/shared"
)

// Observer counts generated statements; satisfied by observability.Metrics.
type Observer interface {
	ReportGenerated(kind string)
}

type Handler struct {
	service *Service
	cache   *Cache
	metrics Observer
	logger  *slog.Logger
}

func NewHandler(logger *slog.Logger, service *Service, cache *Cache, metrics Observer) *Handler {
	return &Handler{service: service, cache: cache, metrics: metrics, logger: logger}
}

// MountRoutes registers the statement endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/trial-balance", h.TrialBalance)
	r.Get("/income-statement", h.IncomeStatement)
	r.Get("/balance-sheet", h.BalanceSheet)
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "tenant not resolved")
		return
	}
	window, err := windowFromQuery(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Window", err.Error())
		return
	}
	var typeFilter *accounts.AccountType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := accounts.AccountType(raw)
		if !t.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "unknown account type "+raw)
			return
		}
		typeFilter = &t
	}
	typePart := ""
	if typeFilter != nil {
		typePart = string(*typeFilter)
	}
	var out TrialBalance
	err = h.cached(r, &out, "tb", tenantID, window, typePart, func() (interface{}, error) {
		return h.service.TrialBalance(r.Context(), tenantID, window, typeFilter)
	})
	if err != nil {
		h.fail(w, "trial balance", err)
		return
	}
	h.observe("trial_balance")
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "tenant not resolved")
		return
	}
	window, err := windowFromQuery(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Window", err.Error())
		return
	}
	var out IncomeStatement
	err = h.cached(r, &out, "is", tenantID, window, "", func() (interface{}, error) {
		return h.service.IncomeStatement(r.Context(), tenantID, window)
	})
	if err != nil {
		h.fail(w, "income statement", err)
		return
	}
	h.observe("income_statement")
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "tenant not resolved")
		return
	}
	window, err := windowFromQuery(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Window", err.Error())
		return
	}
	var out BalanceSheet
	err = h.cached(r, &out, "bs", tenantID, window, "", func() (interface{}, error) {
		return h.service.BalanceSheet(r.Context(), tenantID, window)
	})
	if err != nil {
		h.fail(w, "balance sheet", err)
		return
	}
	h.observe("balance_sheet")
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) cached(r *http.Request, dest interface{}, kind string, tenantID int64, window ledger.Window, extra string, build func() (interface{}, error)) error {
	key, err := h.cache.BuildKey(r.Context(), "reports", kind, strconv.FormatInt(tenantID, 10), windowPart(window), extra)
	if err != nil {
		h.logger.Warn("report cache key unavailable", slog.Any("error", err))
		value, err := build()
		if err != nil {
			return err
		}
		return reencode(value, dest)
	}
	return h.cache.FetchJSON(r.Context(), key, dest, func(context.Context) (interface{}, error) {
		return build()
	})
}

func (h *Handler) fail(w http.ResponseWriter, what string, err error) {
	h.logger.Error("report build failed", slog.String("report", what), slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Report Failed", "could not build "+what)
}

func (h *Handler) observe(kind string) {
	if h.metrics != nil {
		h.metrics.ReportGenerated(kind)
	}
}

func windowFromQuery(r *http.Request) (ledger.Window, error) {
	var window ledger.Window
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return ledger.Window{}, err
		}
		window.From = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return ledger.Window{}, err
		}
		window.To = &t
	}
	return window, nil
}

func windowPart(window ledger.Window) string {
	from, to := "", ""
	if window.From != nil {
		from = window.From.Format("2006-01-02")
	}
	if window.To != nil {
		to = window.To.Format("2006-01-02")
	}
	return from + ".." + to
}
