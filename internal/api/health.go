package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"skybound/flightline/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the server and its backing stores are reachable.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(db *sqlx.DB, redisClient *redis.Client, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		pgStatus := "ok"
		pgDetails := "Postgres connected"
		if err := db.Ping(); err != nil {
			pgStatus = "down"
			pgDetails = err.Error()
		}
		services["postgres"] = entities.ServiceStatus{
			Status:  pgStatus,
			Details: pgDetails,
		}

		// Redis is optional; a down cache degrades but does not break the API.
		if redisClient != nil {
			redisStatus := "ok"
			redisDetails := "Redis connected"
			if err := redisClient.Ping(r.Context()).Err(); err != nil {
				redisStatus = "degraded"
				redisDetails = err.Error()
			}
			services["redis"] = entities.ServiceStatus{
				Status:  redisStatus,
				Details: redisDetails,
			}
		}

		overallStatus := "ok"
		if services["postgres"].Status != "ok" {
			overallStatus = "down"
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
