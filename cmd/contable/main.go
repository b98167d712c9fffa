package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/IntenseCord/Proyecto-POO2/internal/accounts"
	"github.com/IntenseCord/Proyecto-POO2/internal/app"
	"github.com/IntenseCord/Proyecto-POO2/internal/auth"
	"github.com/IntenseCord/Proyecto-POO2/internal/documents"
	"github.com/IntenseCord/Proyecto-POO2/internal/inventory"
	"github.com/IntenseCord/Proyecto-POO2/internal/ledger"
	"github.com/IntenseCord/Proyecto-POO2/internal/observability"
	"github.com/IntenseCord/Proyecto-POO2/internal/platform/cache"
	"github.com/IntenseCord/Proyecto-POO2/internal/platform/db"
	"github.com/IntenseCord/Proyecto-POO2/internal/reports"
	"github.com/IntenseCord/Proyecto-POO2/internal/tenants"
	"github.com/IntenseCord/Proyecto-POO2/internal/vouchers"
	"github.com/IntenseCord/Proyecto-POO2/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(dbpool)
	sessionStore := auth.NewSessionStore(redisClient, cfg.SessionTTL)
	authService := auth.NewService(authRepo, sessionStore, logger)
	authHandler := auth.NewHandler(logger, authService)

	tenantsRepo := tenants.NewRepository(dbpool)
	tenantsService := tenants.NewService(tenantsRepo, logger)
	tenantsHandler := tenants.NewHandler(logger, tenantsService)

	accountsRepo := accounts.NewRepository(dbpool)
	accountsService := accounts.NewService(accountsRepo)
	accountsHandler := accounts.NewHandler(logger, accountsService)

	reportCache := reports.NewCache(redisClient, cfg.CacheTTL, logger)

	vouchersRepo := vouchers.NewRepository(dbpool)
	vouchersService := vouchers.NewService(vouchersRepo, logger, reportCache, metrics)
	vouchersHandler := vouchers.NewHandler(logger, vouchersService)

	inventoryRepo := inventory.NewRepository(dbpool)
	inventoryService := inventory.NewService(inventoryRepo, accountsRepo, vouchersService, logger, metrics, inventory.Config{
		InventoryCode:   cfg.InventoryAccountCode,
		CounterpartCode: cfg.CounterpartCode,
		CostOfSalesCode: cfg.CostOfSalesCode,
	})
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	aggregator := ledger.NewAggregator(dbpool)
	reportsService := reports.NewService(accountsRepo, aggregator, inventoryService, logger, reports.Config{
		InventoryAccountCode: cfg.InventoryAccountCode,
	})
	reportsHandler := reports.NewHandler(logger, reportsService, reportCache, metrics)

	documentsGenerator := documents.NewGenerator(accountsRepo, vouchersService, logger)
	documentsHandler := documents.NewHandler(logger, documentsGenerator)

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(logger, jobsClient)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthService:      authService,
		AuthHandler:      authHandler,
		TenantsHandler:   tenantsHandler,
		AccountsHandler:  accountsHandler,
		VouchersHandler:  vouchersHandler,
		ReportsHandler:   reportsHandler,
		InventoryHandler: inventoryHandler,
		DocumentsHandler: documentsHandler,
		JobsHandler:      jobsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
