package main

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/phuslu/log"

	"psxanalyzer/api"
	"psxanalyzer/cache"
	"psxanalyzer/config"
	"psxanalyzer/psx"
)

func main() {
	settings := config.Load()

	log.DefaultLogger.Level = log.InfoLevel
	if settings.Debug {
		log.DefaultLogger.Level = log.DebugLevel
	}

	fetcher := psx.NewClient(settings.RequestTimeout, settings.UserAgent)

	var store cache.Store
	if settings.RedisAddr != "" {
		store = cache.NewRedisStore(settings.RedisAddr)
		log.Info().Str("addr", settings.RedisAddr).Msg("using redis cache")
	} else {
		store = cache.NewMemoryStore()
	}

	service := api.NewService(fetcher, store, settings)

	// Each scraping route gets its own quota.
	analyzeLimiter := api.NewRateLimiter(settings.RateLimitPerMinute)
	compareLimiter := api.NewRateLimiter(settings.RateLimitPerMinute)

	router := mux.NewRouter()
	router.HandleFunc("/api/health", service.HealthHandler).Methods("GET")
	router.HandleFunc("/api/stocks", service.StockListHandler).Methods("GET")
	router.Handle("/api/analyze", analyzeLimiter.Middleware(http.HandlerFunc(service.AnalyzeHandler))).Methods("POST")
	router.Handle("/api/compare", compareLimiter.Middleware(http.HandlerFunc(service.CompareHandler))).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins(settings.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	)

	addr := ":" + settings.Port
	log.Info().Str("app", settings.AppName).Str("addr", addr).Msg("server starting")
	if err := http.ListenAndServe(addr, api.RequestLogger(cors(router))); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
