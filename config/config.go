// Package config loads service settings from the environment. A .env file
// in the working directory is honored when present; every variable uses
// the PSX_ prefix except PORT.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the full service configuration.
type Settings struct {
	AppName            string
	Debug              bool
	Port               string
	AllowedOrigins     []string
	PortalBaseURL      string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	UserAgent          string
	RedisAddr          string
	StockListTTL       time.Duration
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/131.0.0.0 Safari/537.36"

// Load reads settings from the environment, applying defaults for anything
// unset.
func Load() Settings {
	_ = godotenv.Load()

	return Settings{
		AppName:            getString("PSX_APP_NAME", "PSX Stock Analyzer"),
		Debug:              getBool("PSX_DEBUG", false),
		Port:               getString("PORT", "8000"),
		AllowedOrigins:     getStrings("PSX_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000", "http://127.0.0.1:5173"}),
		PortalBaseURL:      getString("PSX_BASE_URL", "https://dps.psx.com.pk"),
		RequestTimeout:     getDuration("PSX_REQUEST_TIMEOUT", 30*time.Second),
		RateLimitPerMinute: getInt("PSX_RATE_LIMIT", 10),
		UserAgent:          getString("PSX_USER_AGENT", defaultUserAgent),
		RedisAddr:          getString("PSX_REDIS_ADDR", ""),
		StockListTTL:       getDuration("PSX_STOCK_LIST_TTL", time.Hour),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	// Accept both Go duration strings and plain seconds.
	if parsed, err := time.ParseDuration(v); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func getStrings(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var values []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
