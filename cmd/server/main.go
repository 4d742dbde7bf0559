package main

import (
	"net/http"
	"time"

	"github.com/evyataryagoni/ipdata/internal/config"
	"github.com/evyataryagoni/ipdata/internal/handler"
	"github.com/evyataryagoni/ipdata/internal/ipstack"
	"github.com/evyataryagoni/ipdata/internal/limiter"
	"github.com/evyataryagoni/ipdata/internal/logger"
	"github.com/evyataryagoni/ipdata/internal/metrics"
	"github.com/evyataryagoni/ipdata/internal/router"
	"github.com/evyataryagoni/ipdata/internal/service"
	"github.com/evyataryagoni/ipdata/internal/store"
)

// @title           IPData API
// @version         1.0
// @description     An IP geolocation service backed by the ipstack API, with deduplicated location storage and a manual-entry fallback

// @contact.name   Evyatar Yagoni
// @contact.email  evyatar@example.com

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /
func main() {
	appConfig := config.Load()

	appLogger := setupLogger(appConfig)

	dataStore := setupDataStore(appConfig, appLogger)
	defer dataStore.Close()

	providerClient := setupProvider(appConfig, appLogger)

	rateLimiter := setupRateLimiter(appConfig, appLogger)
	defer rateLimiter.Close()

	metricsCollector := metrics.New()

	ipDataService := service.NewIPDataService(dataStore, providerClient, metricsCollector, appLogger)
	defer ipDataService.Close()

	ipDataHandler := handler.NewIPDataHandler(ipDataService)
	appRouter := router.SetupRouter(ipDataHandler, dataStore, rateLimiter, metricsCollector, appLogger)

	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger.
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting IPData Server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("ip_stack_url", appConfig.IPStackURL).
		Str("rate_limiter_type", appConfig.RateLimitType).
		Int("rate_limit", appConfig.RateLimit).
		Int("rate_limit_window", appConfig.RateLimitWindow).
		Msg("Configuration loaded")

	return appLogger
}

// setupDataStore connects to MySQL and migrates the schema.
func setupDataStore(appConfig *config.Config, log *logger.Logger) store.Store {
	dataStore, err := store.NewMySQLStore(appConfig.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize MySQL store")
	}

	log.Info().Msg("MySQL store initialized")
	return dataStore
}

// setupProvider builds the ipstack client from explicit configuration.
func setupProvider(appConfig *config.Config, log *logger.Logger) ipstack.Client {
	client := ipstack.NewHTTPClient(ipstack.Config{
		BaseURL:   appConfig.IPStackURL,
		AccessKey: appConfig.IPStackAccessKey,
		Timeout:   time.Duration(appConfig.IPStackTimeout) * time.Second,
	})

	log.Info().Str("url", appConfig.IPStackURL).Msg("ipstack client initialized")
	return client
}

// setupRateLimiter initializes the per-client rate limiter.
func setupRateLimiter(appConfig *config.Config, log *logger.Logger) limiter.Limiter {
	effectiveRate := float64(appConfig.RateLimit) / float64(appConfig.RateLimitWindow)

	rateLimiter, err := limiter.NewLimiter(limiter.LimiterConfig{
		Type:              appConfig.RateLimitType,
		RequestsPerSecond: effectiveRate,
		RedisAddr:         appConfig.RedisAddr,
		RedisPassword:     appConfig.RedisPassword,
		RedisDB:           appConfig.RedisDB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Float64("requests_per_second", effectiveRate).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// startServer starts the HTTP server and blocks.
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	serverAddr := ":" + appConfig.Port

	log.Info().
		Str("port", appConfig.Port).
		Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/ipdata").
		Str("health_check", "http://localhost:"+appConfig.Port+"/health").
		Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
		Str("swagger", "http://localhost:"+appConfig.Port+"/swagger/index.html").
		Msg("Server is running")

	log.Fatal().Err(http.ListenAndServe(serverAddr, appRouter)).Msg("Server failed")
}
