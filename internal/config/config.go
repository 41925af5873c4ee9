package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	// CacheTTL bounds how long a computed insights payload is served from cache.
	CacheTTL time.Duration
	// CacheBackend is "memory" (single instance) or "postgres" (shared between instances).
	CacheBackend string
	// ComputeTimeout is the wall-clock budget for one insights computation.
	ComputeTimeout time.Duration
	// ForecastHorizons lists projection windows in days.
	ForecastHorizons []int

	BudgetWarnPct   float64
	BudgetDangerPct float64

	PruneSchedule      string
	CORSAllowedOrigins []string
	MuteRatePerMinute  int
	RunMigrations      bool
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	horizons, err := parseHorizons(getEnv("FORECAST_HORIZONS", "30,60,90"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBConn:    getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		JWTSecret: getEnv("JWT_SECRET", "secret"),

		CacheTTL:         getEnvDuration("CACHE_TTL", 30*time.Second),
		CacheBackend:     strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		ComputeTimeout:   getEnvDuration("COMPUTE_TIMEOUT", 3*time.Second),
		ForecastHorizons: horizons,

		BudgetWarnPct:   getEnvFloat("BUDGET_WARN_PCT", 80),
		BudgetDangerPct: getEnvFloat("BUDGET_DANGER_PCT", 100),

		PruneSchedule:      getEnv("PRUNE_SCHEDULE", "@every 1h"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		MuteRatePerMinute:  getEnvInt("MUTE_RATE_PER_MINUTE", 30),
		RunMigrations:      getEnv("RUN_MIGRATIONS", "true") == "true",
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "postgres" {
		return nil, fmt.Errorf("CACHE_BACKEND must be memory or postgres, got %q", cfg.CacheBackend)
	}
	if cfg.BudgetWarnPct >= cfg.BudgetDangerPct {
		return nil, fmt.Errorf("BUDGET_WARN_PCT (%.0f) must be below BUDGET_DANGER_PCT (%.0f)", cfg.BudgetWarnPct, cfg.BudgetDangerPct)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseHorizons(s string) ([]int, error) {
	var horizons []int
	for _, item := range splitList(s) {
		n, err := strconv.Atoi(item)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid forecast horizon %q", item)
		}
		horizons = append(horizons, n)
	}
	if len(horizons) == 0 {
		return nil, fmt.Errorf("FORECAST_HORIZONS is required")
	}
	return horizons, nil
}
