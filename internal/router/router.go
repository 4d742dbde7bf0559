package router

import (
	"net/http"

	_ "github.com/evyataryagoni/ipdata/docs" // Swagger docs
	"github.com/evyataryagoni/ipdata/internal/handler"
	"github.com/evyataryagoni/ipdata/internal/limiter"
	"github.com/evyataryagoni/ipdata/internal/logger"
	"github.com/evyataryagoni/ipdata/internal/metrics"
	custommiddleware "github.com/evyataryagoni/ipdata/internal/middleware"
	v1 "github.com/evyataryagoni/ipdata/internal/router/v1"
	"github.com/evyataryagoni/ipdata/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter creates and configures the Chi router with all middleware and
// routes. Middleware order matters: request ID first, then logging, then rate
// limiting.
func SetupRouter(ipDataHandler *handler.IPDataHandler, dataStore store.Store, rateLimiter limiter.Limiter, m *metrics.Metrics, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.RateLimitMiddleware(rateLimiter))
	r.Use(custommiddleware.MetricsMiddleware(m))

	// Versioned API routes
	r.Mount("/v1", v1.SetupRoutes(ipDataHandler))

	// Health check endpoint - used by load balancers and monitoring
	r.Get("/health", healthCheckHandler(dataStore))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// healthCheckHandler reports 200 OK while the datastore is reachable and 503
// otherwise.
func healthCheckHandler(dataStore store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := dataStore.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
