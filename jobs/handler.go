package jobs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/IntenseCord/Proyecto-POO2/internal/platform/httpx"
	"github.com/IntenseCord/Proyecto-POO2/internal/shared"
)

// Enqueuer queues on-demand job runs. Satisfied by Client.
type Enqueuer interface {
	EnqueueLedgerIntegrity(ctx context.Context, payload LedgerIntegrityPayload) (*asynq.TaskInfo, error)
	EnqueueLowStockScan(ctx context.Context, payload LowStockPayload) (*asynq.TaskInfo, error)
}

// Handler exposes on-demand runs of the background jobs, scoped to the
// caller's tenant. The cron schedule covers every tenant; these endpoints
// let an operator trigger a single run without waiting for it.
type Handler struct {
	client Enqueuer
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger, client Enqueuer) *Handler {
	return &Handler{client: client, logger: logger}
}

// MountRoutes registers the job trigger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/ledger-integrity", h.RunLedgerIntegrity)
	r.Post("/low-stock-scan", h.RunLowStockScan)
}

func (h *Handler) RunLedgerIntegrity(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "tenant not resolved")
		return
	}
	info, err := h.client.EnqueueLedgerIntegrity(r.Context(), LedgerIntegrityPayload{TenantID: tenantID})
	if err != nil {
		h.logger.Error("enqueue ledger integrity", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "could not enqueue job")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"task_id": info.ID, "queue": info.Queue})
}

func (h *Handler) RunLowStockScan(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "tenant not resolved")
		return
	}
	info, err := h.client.EnqueueLowStockScan(r.Context(), LowStockPayload{TenantID: tenantID})
	if err != nil {
		h.logger.Error("enqueue low stock scan", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "could not enqueue job")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"task_id": info.ID, "queue": info.Queue})
}
