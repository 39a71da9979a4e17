// Package config loads application configuration from a .env file with
// system environment fallbacks.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI and scheduler need.
type Config struct {
	EbayBaseURL  string
	RequestEvery time.Duration
	HTTPTimeout  time.Duration

	DetailWorkers int
	MaxRetries    int

	CachePath  string
	OutputPath string

	// RefreshCron is a cron spec for scheduled re-runs, empty when
	// scheduling is disabled.
	RefreshCron string
}

// Load reads the .env file and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using system env vars")
	}

	return &Config{
		EbayBaseURL:  getEnv("EBAY_BASE_URL", "https://www.ebay.com"),
		RequestEvery: time.Duration(getEnvInt("REQUEST_EVERY_MS", 1000)) * time.Millisecond,
		HTTPTimeout:  time.Duration(getEnvInt("HTTP_TIMEOUT_MS", 15000)) * time.Millisecond,

		DetailWorkers: getEnvInt("DETAIL_WORKERS", 4),
		MaxRetries:    getEnvInt("MAX_RETRIES", 3),

		CachePath:  getEnv("CACHE_PATH", ".auctionscope/cache.json"),
		OutputPath: getEnv("OUTPUT_PATH", "./output"),

		RefreshCron: getEnv("REFRESH_CRON", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
