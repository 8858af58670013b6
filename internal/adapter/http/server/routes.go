package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Temutjin2k/fare-estimator/docs"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/middleware"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware, mode types.ServiceMode, log logger.Logger) {
	// System Health
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	setupSwaggerRoutes(mux, mode, log)
	setupMetricsRoute(mux)

	switch mode {
	case types.EstimatorService:
		setupEstimatorRoutes(mux, routes)
	case types.JournalService:
		setupJournalRoutes(mux, routes, m)
	}
}

// setupEstimatorRoutes setups routes for estimator service
func setupEstimatorRoutes(mux *http.ServeMux, routes *handlers) {
	mux.HandleFunc("POST /estimates", routes.estimator.CreateEstimate)                       // Estimate fare and ETA
	mux.HandleFunc("POST /estimates/{estimate_id}/booking", routes.estimator.ConfirmBooking) // Book an estimate
	mux.HandleFunc("GET /locations", routes.estimator.ListLocations)                         // Known landmarks
	mux.HandleFunc("GET /ws/form", routes.form.HandleWS)                                     // WebSocket form session
}

// setupJournalRoutes setups routes for journal service
func setupJournalRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	mux.Handle("GET /admin/estimates", m.RequireRoles(routes.journal.ListEstimates, types.RoleAdmin))          // Paginated journal
	mux.Handle("GET /admin/estimates/export", m.RequireRoles(routes.journal.ExportEstimates, types.RoleAdmin)) // CSV export
}

// setupSwaggerRoutes configures Swagger UI endpoints based on service mode
func setupSwaggerRoutes(mux *http.ServeMux, mode types.ServiceMode, log logger.Logger) {
	var instanceName string

	switch mode {
	case types.EstimatorService:
		instanceName = docs.EstimatorInstance
	case types.JournalService:
		instanceName = docs.JournalInstance
	default:
		log.Warn(wrap.WithAction(context.Background(), "setup swagger routes"), "unknown service mode for swagger setup", "mode", mode)
		return
	}

	mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName(instanceName)))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
