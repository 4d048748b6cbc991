package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/glouglou/cashup-backend/internal/domain"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv           string
	GRPCAddr         string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	MetricsNamespace string
	DefaultCurrency  string
	DefaultFloat     decimal.Decimal
	SheetsEndpoint   string
	SheetsTimeout    time.Duration
	ShutdownTimeout  time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		GRPCAddr:         listenAddr(k.String("GRPC_ADDR"), ":8080"),
		HTTPAddr:         listenAddr(k.String("HTTP_ADDR"), ":9090"),
		LogLevel:         valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:        valueOrDefault(k.String("LOG_FORMAT"), "json"),
		MetricsNamespace: valueOrDefault(k.String("METRICS_NAMESPACE"), "cashup"),
		DefaultCurrency:  strings.ToUpper(valueOrDefault(k.String("DEFAULT_CURRENCY"), domain.DefaultCurrencyCode)),
		SheetsEndpoint:   strings.TrimSpace(k.String("SHEETS_ENDPOINT")),
		SheetsTimeout:    parseDuration(k.String("SHEETS_TIMEOUT"), "10s"),
		ShutdownTimeout:  parseDuration(k.String("SHUTDOWN_TIMEOUT"), "15s"),
	}

	if !domain.IsSupportedCurrency(cfg.DefaultCurrency) {
		return nil, fmt.Errorf("DEFAULT_CURRENCY %q is not a supported currency", cfg.DefaultCurrency)
	}

	rawFloat := valueOrDefault(k.String("DEFAULT_FLOAT"), domain.DefaultFloat.String())
	defaultFloat, err := decimal.NewFromString(strings.TrimSpace(rawFloat))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_FLOAT %q: %w", rawFloat, err)
	}
	if defaultFloat.IsNegative() {
		return nil, fmt.Errorf("DEFAULT_FLOAT must not be negative, got %s", rawFloat)
	}
	cfg.DefaultFloat = defaultFloat

	if cfg.SheetsEndpoint != "" && !strings.HasPrefix(cfg.SheetsEndpoint, "https://") && !strings.HasPrefix(cfg.SheetsEndpoint, "http://") {
		return nil, fmt.Errorf("SHEETS_ENDPOINT must be an http(s) URL")
	}

	return cfg, nil
}

// SubmissionEnabled reports whether a sheet endpoint is configured
func (c *Config) SubmissionEnabled() bool {
	return c.SheetsEndpoint != ""
}

func listenAddr(value, fallback string) string {
	addr := strings.TrimSpace(value)
	if addr == "" {
		return fallback
	}
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
