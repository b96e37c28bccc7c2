package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/homewise/affordability/internal/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Rate source names accepted by RATE_SOURCE.
const (
	RateSourceStatic = "static"
	RateSourceRBA    = "rba"
)

// DefaultRBAURL is the published cash rate target page.
const DefaultRBAURL = "https://www.rba.gov.au/statistics/cash-rate/"

// ServerConfig holds the HTTP service settings read from the environment.
type ServerConfig struct {
	Port               string
	Environment        string
	LogLevel           string
	RateSource         string
	RBAURL             string
	RateCacheTTL       time.Duration
	RedisAddr          string
	RateLimitPerMinute int
	CORSOrigins        []string
	LoanRateMargin     decimal.Decimal
	LoanTermYears      int
	ShutdownTimeout    time.Duration
}

// DefaultServerConfig returns the settings used when nothing is configured.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		LogLevel:           "info",
		RateSource:         RateSourceStatic,
		RBAURL:             DefaultRBAURL,
		RateCacheTTL:       time.Hour,
		RateLimitPerMinute: 60,
		CORSOrigins:        []string{"http://localhost:3000"},
		LoanRateMargin:     domain.DefaultLoanRateMargin,
		LoanTermYears:      domain.DefaultTermYears,
		ShutdownTimeout:    10 * time.Second,
	}
}

// LoadServerConfig loads .env files (".env" when none are named) without
// overriding variables already set, then reads the settings. Invalid values
// are logged and replaced by their defaults.
func LoadServerConfig(logger *zap.Logger, envFiles ...string) ServerConfig {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Info("no .env file loaded, using process environment", zap.Error(err))
	}

	def := DefaultServerConfig()
	cfg := ServerConfig{
		Port:        getEnv("PORT", def.Port),
		Environment: getEnv("ENVIRONMENT", def.Environment),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", def.LogLevel)),
		RBAURL:      getEnv("RBA_URL", def.RBAURL),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		CORSOrigins: def.CORSOrigins,
	}

	cfg.RateSource = strings.ToLower(getEnv("RATE_SOURCE", def.RateSource))
	if cfg.RateSource != RateSourceStatic && cfg.RateSource != RateSourceRBA {
		logger.Warn("invalid RATE_SOURCE, using default",
			zap.String("value", cfg.RateSource), zap.String("default", def.RateSource))
		cfg.RateSource = def.RateSource
	}

	cfg.RateCacheTTL = getEnvAsDuration(logger, "RATE_CACHE_TTL", def.RateCacheTTL)
	cfg.ShutdownTimeout = getEnvAsDuration(logger, "SHUTDOWN_TIMEOUT", def.ShutdownTimeout)
	cfg.RateLimitPerMinute = getEnvAsPositiveInt(logger, "RATE_LIMIT_PER_MINUTE", def.RateLimitPerMinute)
	cfg.LoanTermYears = getEnvAsPositiveInt(logger, "LOAN_TERM_YEARS", def.LoanTermYears)

	cfg.LoanRateMargin = def.LoanRateMargin
	if v := os.Getenv("LOAN_RATE_MARGIN"); v != "" {
		margin, err := decimal.NewFromString(v)
		if err != nil || margin.IsNegative() {
			logger.Warn("invalid LOAN_RATE_MARGIN, using default",
				zap.String("value", v), zap.String("default", def.LoanRateMargin.String()))
		} else {
			cfg.LoanRateMargin = margin
		}
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	logger.Info("server configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("rate_source", cfg.RateSource),
		zap.Duration("rate_cache_ttl", cfg.RateCacheTTL),
		zap.Bool("redis", cfg.RedisAddr != ""),
		zap.Int("rate_limit_per_minute", cfg.RateLimitPerMinute))
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsPositiveInt(logger *zap.Logger, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("invalid integer setting, using default",
			zap.String("key", key), zap.String("value", v), zap.Int("default", fallback))
		return fallback
	}
	return n
}

func getEnvAsDuration(logger *zap.Logger, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		logger.Warn("invalid duration setting, using default",
			zap.String("key", key), zap.String("value", v), zap.Duration("default", fallback))
		return fallback
	}
	return d
}
