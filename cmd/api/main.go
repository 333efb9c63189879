package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/estatelab/estate-backend/api/routes"
	"github.com/estatelab/estate-backend/internal/contracts"
	"github.com/estatelab/estate-backend/internal/installments"
	"github.com/estatelab/estate-backend/internal/payments"
	"github.com/estatelab/estate-backend/internal/pricing"
	"github.com/estatelab/estate-backend/internal/releases"
	"github.com/estatelab/estate-backend/internal/successions"
	"github.com/estatelab/estate-backend/pkg/config"
	"github.com/estatelab/estate-backend/pkg/db"
	"github.com/estatelab/estate-backend/pkg/logger"
	"github.com/estatelab/estate-backend/pkg/metrics"
	"github.com/estatelab/estate-backend/pkg/migrate"
	"github.com/estatelab/estate-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	pricingSvc, err := pricing.NewService(pricing.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	installmentsSvc, err := installments.NewService(installments.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create installments service", err)
		os.Exit(1)
	}

	paymentsSvc, err := payments.NewService(payments.NewRepository(dbClient.DB()), pricingSvc, installmentsSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	contractsSvc, err := contracts.NewService(
		contracts.NewRepository(dbClient.DB()),
		dbClient,
		pricingSvc,
		installmentsSvc,
		paymentsSvc,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create contracts service", err)
		os.Exit(1)
	}

	releasesSvc, err := releases.NewService(releases.NewRepository(dbClient.DB()), dbClient, cfg.Ledger.SerialNoteWidth)
	if err != nil {
		logg.Error(context.Background(), "failed to create releases service", err)
		os.Exit(1)
	}

	successionsSvc, err := successions.NewService(successions.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create successions service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			httpMetrics,
			contractsSvc,
			pricingSvc,
			installmentsSvc,
			paymentsSvc,
			releasesSvc,
			successionsSvc,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
