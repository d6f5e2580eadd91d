package api

import (
	"context"
	"net/http"
	"time"

	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Pings Postgres and the cache concurrently.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(db *sqlx.DB, cache common.CacheInterface, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		var pgStatus, cacheStatus entities.ServiceStatus

		// Failures are reported per service; the group never aborts early
		var g errgroup.Group
		g.Go(func() error {
			pgStatus = probe("Postgres Connected", func() error { return db.PingContext(ctx) })
			return nil
		})
		g.Go(func() error {
			cacheStatus = probe("Cache Connected", func() error { return cache.Ping(ctx) })
			return nil
		})
		_ = g.Wait()

		services := map[string]entities.ServiceStatus{
			"postgres": pgStatus,
			"cache":    cacheStatus,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}

		common.WriteJSON(w, code, entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		})
	}
}

func probe(okDetails string, ping func() error) entities.ServiceStatus {
	if err := ping(); err != nil {
		return entities.ServiceStatus{Status: "down", Details: err.Error()}
	}
	return entities.ServiceStatus{Status: "ok", Details: okDetails}
}
