package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/auth"
	"github.com/IntenseCord/Proyecto-POO2/internal/documents"
	"github.com/IntenseCord/Proyecto-POO2/internal/inventory"
	"github.com/IntenseCord/Proyecto-POO2/internal/observability"
	"github.com/IntenseCord/Proyecto-POO2/internal/reports"
	"github.com/IntenseCord/Proyecto-POO2/internal/tenants"
	"github.com/IntenseCord/Proyecto-POO2/internal/vouchers"
	"github.com/IntenseCord/Proyecto-POO2/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthService      *auth.Service
	AuthHandler      *auth.Handler
	TenantsHandler   *tenants.Handler
	AccountsHandler  *accounts.Handler
	VouchersHandler  *vouchers.Handler
	ReportsHandler   *reports.Handler
	InventoryHandler *inventory.Handler
	DocumentsHandler *documents.Handler
	JobsHandler      *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			params.AuthHandler.MountPublicRoutes(public)
		})
		api.Group(func(private chi.Router) {
			private.Use(auth.Middleware(params.AuthService))
			params.AuthHandler.MountRoutes(private)
			private.Route("/tenants", params.TenantsHandler.MountRoutes)
			private.Route("/accounts", params.AccountsHandler.MountRoutes)
			private.Route("/vouchers", params.VouchersHandler.MountRoutes)
			private.Route("/reports", params.ReportsHandler.MountRoutes)
			private.Route("/inventory", params.InventoryHandler.MountRoutes)
			private.Route("/documents", params.DocumentsHandler.MountRoutes)
			private.Route("/jobs", params.JobsHandler.MountRoutes)
		})
	})

	return r
}
