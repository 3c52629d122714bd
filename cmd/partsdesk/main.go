package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/partsdesk/partsdesk/internal/app"
	"github.com/partsdesk/partsdesk/internal/auth"
	"github.com/partsdesk/partsdesk/internal/catalog"
	"github.com/partsdesk/partsdesk/internal/expenses"
	"github.com/partsdesk/partsdesk/internal/platform/rest"
	"github.com/partsdesk/partsdesk/internal/profit"
	"github.com/partsdesk/partsdesk/internal/sales"
	"github.com/partsdesk/partsdesk/internal/session"
	"github.com/partsdesk/partsdesk/internal/warehouse"
)

const sessionCookie = "partsdesk_session"

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

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := session.NewManager(redisClient, sessionCookie, cfg.SessionTTL, cfg.IsProduction())
	backend := rest.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, sessionManager, sessionManager.ResetFromContext, logger)

	authService := auth.NewService(backend)
	authHandler := auth.NewHandler(logger, authService)

	catalogService := catalog.NewService(backend, logger)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	warehouseService := warehouse.NewService(backend)
	warehouseHandler := warehouse.NewHandler(logger, warehouseService)

	salesService := sales.NewService(backend)
	salesHandler := sales.NewHandler(logger, salesService)

	expensesService := expenses.NewService(backend)
	expensesHandler := expenses.NewHandler(logger, expensesService)

	profitService := profit.NewService(salesService, expensesService, logger)
	profitHandler := profit.NewHandler(logger, profitService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		AuthHandler:      authHandler,
		CatalogHandler:   catalogHandler,
		WarehouseHandler: warehouseHandler,
		SalesHandler:     salesHandler,
		ExpensesHandler:  expensesHandler,
		ProfitHandler:    profitHandler,
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
