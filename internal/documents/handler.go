package documents

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/IntenseCord/Proyecto-POO2/internal/platform/httpx"
	"github.com/IntenseCord/Proyecto-POO2/internal/shared"
	"github.com/IntenseCord/Proyecto-POO2/internal/vouchers"
)

type Handler struct {
	generator *Generator
	logger    *slog.Logger
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, generator *Generator) *Handler {
	return &Handler{generator: generator, logger: logger, validator: validator.New()}
}

// MountRoutes registers one posting endpoint per document kind.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sales-invoices", h.post(func(p docPayload, date time.Time) Document {
		return NewSalesInvoice(p.Number, p.Party, date, p.Amount)
	}))
	r.Post("/credit-notes", h.post(func(p docPayload, date time.Time) Document {
		return NewCreditNote(p.Number, p.InvoiceNumber, p.Party, date, p.Amount)
	}))
	r.Post("/purchase-invoices", h.post(func(p docPayload, date time.Time) Document {
		return NewPurchaseInvoice(p.Number, p.Party, date, p.Amount)
	}))
	r.Post("/cash-receipts", h.post(func(p docPayload, date time.Time) Document {
		return NewCashReceipt(p.Number, p.Party, date, p.Amount)
	}))
}

type docPayload struct {
	Number        string          `json:"number" validate:"required"`
	InvoiceNumber string          `json:"invoice_number"`
	Party         string          `json:"party" validate:"required"`
	Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
	Amount        decimal.Decimal `json:"amount"`
}

func (h *Handler) post(build func(p docPayload, date time.Time) Document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := shared.TenantFromContext(r.Context())
		if !ok {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "tenant not resolved")
			return
		}
		userID, _ := shared.UserFromContext(r.Context())

		var p docPayload
		if err := httpx.DecodeJSON(r, &p); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
			return
		}
		if err := h.validator.Struct(p); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
			return
		}
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", "date must be YYYY-MM-DD")
			return
		}

		voucher, err := h.generator.GenerateVoucher(r.Context(), tenantID, build(p, date), userID)
		if err != nil {
			h.respondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, voucher)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrMissingParty),
		errors.Is(err, ErrMissingNumber),
		errors.Is(err, ErrMissingDate):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Document", err.Error())
	case errors.Is(err, ErrAccountMissing):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Document", err.Error())
	case errors.Is(err, vouchers.ErrUnbalanced), errors.Is(err, vouchers.ErrEmpty):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Document", err.Error())
	default:
		h.logger.Error("document request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "unexpected failure")
	}
}
