package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"soccerspot/internal/pricing"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultDatabaseURL     = "soccerspot.db"
	defaultLogLevel        = "info"
	defaultTimezone        = "Africa/Abidjan"
	defaultShutdownTimeout = "10s"
	defaultRateLimitRPS    = "20"
	defaultRateLimitBurst  = "40"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultCinetPayBaseURL = "https://api-checkout.cinetpay.com"
	defaultCinetPayTimeout = "15s"
	defaultCurrency        = "XOF"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	DatabaseURL     string
	JWTSecret       string
	LogLevel        string
	Timezone        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	RateLimitRPS    float64
	RateLimitBurst  int
	MetricsEnabled  bool

	CinetPay CinetPayConfig

	// Pricing is the commission policy. It is not read from the environment:
	// changing it is a code change.
	Pricing pricing.Policy
}

type CinetPayConfig struct {
	APIKey    string
	SiteID    string
	BaseURL   string
	NotifyURL string
	ReturnURL string
	Currency  string
	Timeout   time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Pricing: pricing.DefaultPolicy()}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.Timezone = strings.TrimSpace(getEnv("TIMEZONE", defaultTimezone))
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	cfg.MetricsEnabled = parseBoolEnv("METRICS_ENABLED", "true")

	var err error
	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitRPS, err = strconv.ParseFloat(strings.TrimSpace(getEnv("RATE_LIMIT_RPS", defaultRateLimitRPS)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	cfg.RateLimitBurst, err = strconv.Atoi(strings.TrimSpace(getEnv("RATE_LIMIT_BURST", defaultRateLimitBurst)))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg.CinetPay = CinetPayConfig{
		APIKey:    strings.TrimSpace(os.Getenv("CINETPAY_API_KEY")),
		SiteID:    strings.TrimSpace(os.Getenv("CINETPAY_SITE_ID")),
		BaseURL:   strings.TrimRight(strings.TrimSpace(getEnv("CINETPAY_BASE_URL", defaultCinetPayBaseURL)), "/"),
		NotifyURL: strings.TrimSpace(os.Getenv("CINETPAY_NOTIFY_URL")),
		ReturnURL: strings.TrimSpace(os.Getenv("CINETPAY_RETURN_URL")),
		Currency:  defaultCurrency,
	}
	cfg.CinetPay.Timeout, err = parseDurationEnv("CINETPAY_TIMEOUT", defaultCinetPayTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	if cfg.CinetPay.Timeout <= 0 {
		return fmt.Errorf("CINETPAY_TIMEOUT must be > 0")
	}
	if err := cfg.Pricing.Validate(); err != nil {
		return err
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.CinetPay.APIKey == "" || cfg.CinetPay.SiteID == "" {
			return fmt.Errorf("in prod/release CINETPAY_API_KEY and CINETPAY_SITE_ID must be set")
		}
		if cfg.CinetPay.NotifyURL == "" {
			return fmt.Errorf("in prod/release CINETPAY_NOTIFY_URL must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
