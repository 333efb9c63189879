package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estatelab/estate-backend/api/controllers"
	"github.com/estatelab/estate-backend/api/middleware"
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
	"github.com/estatelab/estate-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	contractsSvc contracts.Service,
	pricingSvc pricing.Service,
	installmentsSvc installments.Service,
	paymentsSvc payments.Service,
	releasesSvc releases.Service,
	successionsSvc successions.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	var redisP db.Pinger
	if redisClient != nil {
		redisP = redisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ActorContext(logg))
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", controllers.ContractList(contractsSvc, logg))
			r.Post("/", controllers.ContractCreate(contractsSvc, logg))
			r.Get("/{contractId}", controllers.ContractDetail(contractsSvc, logg))
			r.Patch("/{contractId}", controllers.ContractUpdate(contractsSvc, logg))
			r.Get("/{contractId}/payments", controllers.ContractPayments(paymentsSvc, logg))
		})

		r.Route("/projects/{projectId}", func(r chi.Router) {
			r.Post("/recalculate-prices", controllers.ContractRecalculatePrices(contractsSvc, logg))
			r.Get("/price-preview", controllers.PricePreview(pricingSvc, installmentsSvc, logg))
			r.Get("/contract-summary", controllers.ContractSummary(contractsSvc, logg))
			r.Get("/releases", controllers.ReleaseList(releasesSvc, logg))
		})

		r.Route("/releases", func(r chi.Router) {
			r.Post("/", controllers.ReleaseCreate(releasesSvc, logg))
			r.Get("/{releaseId}", controllers.ReleaseDetail(releasesSvc, logg))
			r.Patch("/{releaseId}", controllers.ReleaseProcess(releasesSvc, logg))
		})

		r.Route("/successions", func(r chi.Router) {
			r.Get("/", controllers.SuccessionList(successionsSvc, logg))
			r.Post("/", controllers.SuccessionCreate(successionsSvc, logg))
			r.Get("/{successionId}", controllers.SuccessionDetail(successionsSvc, logg))
			r.Patch("/{successionId}", controllers.SuccessionUpdate(successionsSvc, logg))
		})
	})

	return r
}
