package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds service configuration.
type Config struct {
	DatabaseURL        string
	ServerAddr         string
	TradeOfferTTL      time.Duration
	ExpireSweepEvery   time.Duration
	ReviewSweepEvery   time.Duration
	IdempotencyTTL     time.Duration
	IdempotencyMaxBody int
}

// Load reads configuration from environment.
func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "league_hub")
		pass := getenv("POSTGRES_PASSWORD", "league_hub_pass")
		db := getenv("POSTGRES_DB", "league_hub")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}

	return &Config{
		DatabaseURL:        dsn,
		ServerAddr:         getenv("SERVER_ADDR", "0.0.0.0:8080"),
		TradeOfferTTL:      parseDuration(getenv("TRADE_OFFER_TTL", "168h"), 168*time.Hour),
		ExpireSweepEvery:   parseDuration(getenv("TRADE_EXPIRE_SWEEP_INTERVAL", "1m"), time.Minute),
		ReviewSweepEvery:   parseDuration(getenv("TRADE_REVIEW_SWEEP_INTERVAL", "1m"), time.Minute),
		IdempotencyTTL:     parseDuration(getenv("IDEMPOTENCY_TTL", "24h"), 24*time.Hour),
		IdempotencyMaxBody: parseInt(getenv("IDEMPOTENCY_MAX_BODY", "65536"), 64<<10),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}
