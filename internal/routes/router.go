package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"skybound/flightline/internal/api"
	"skybound/flightline/internal/db"
	"skybound/flightline/internal/jobs"
	"skybound/flightline/internal/logging"
	"skybound/flightline/internal/metrics"
	"skybound/flightline/internal/middleware"
	"skybound/flightline/internal/workers"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key", "X-Member-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	handlers := api.NewHandlers(deps)

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Services.Redis, upSince))

	// Hourly fleet sweep feeding the overdue / due-soon gauges.
	jobs.InitializeJobs(
		context.Background(),
		deps.Repo.Schools,
		deps.Services.Components,
		metricsReg,
	)

	// Visit-event consumer evicting stale component caches.
	workers.InitWorkers(
		context.Background(),
		deps.Services.Queue,
		deps.Services.Cache,
	)

	RegisterAPIRoutes(r, metricsReg, deps, handlers)

	return r
}
