package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	App     AppConfig
	Dataset DatasetConfig
	Targets TargetsConfig
	OTEL    OTELConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host                string
	Port                int
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	AllowedOrigins      string
}

// AppConfig holds service identity and logging configuration
type AppConfig struct {
	Env            string
	ServiceName    string
	ServiceVersion string
	LogLevel       string
}

// DatasetConfig holds the input dataset location
type DatasetConfig struct {
	Path string
}

// TargetsConfig holds the static KPI goal values
type TargetsConfig struct {
	Revenue          float64
	ConversionRate   float64
	DemoToPurchase   float64
	JobsPlaced       float64
	AIAssistRequests float64
	PromoRequests    float64
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	Endpoint string
	Enabled  bool
}

// Load reads .env (if present), applies environment overrides and defaults,
// and validates the result. Missing .env is not an error; env vars win over
// file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT_SECONDS", 30)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_NAME", "salesdash")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATASET_PATH", "data/sales_events.csv")
	v.SetDefault("TARGET_REVENUE", 500000.0)
	v.SetDefault("TARGET_CONVERSION_RATE", 20.0)
	v.SetDefault("TARGET_DEMO_TO_PURCHASE", 30.0)
	v.SetDefault("TARGET_JOBS_PLACED", 50.0)
	v.SetDefault("TARGET_AI_ASSIST_REQUESTS", 100.0)
	v.SetDefault("TARGET_PROMO_REQUESTS", 50.0)
	v.SetDefault("OTEL_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_ENABLED", false)

	cfg := &Config{
		Server: ServerConfig{
			Host:                v.GetString("SERVER_HOST"),
			Port:                v.GetInt("SERVER_PORT"),
			ReadTimeoutSeconds:  v.GetInt("SERVER_READ_TIMEOUT_SECONDS"),
			WriteTimeoutSeconds: v.GetInt("SERVER_WRITE_TIMEOUT_SECONDS"),
			AllowedOrigins:      v.GetString("ALLOWED_ORIGINS"),
		},
		App: AppConfig{
			Env:            v.GetString("APP_ENV"),
			ServiceName:    v.GetString("SERVICE_NAME"),
			ServiceVersion: v.GetString("SERVICE_VERSION"),
			LogLevel:       v.GetString("LOG_LEVEL"),
		},
		Dataset: DatasetConfig{
			Path: v.GetString("DATASET_PATH"),
		},
		Targets: TargetsConfig{
			Revenue:          v.GetFloat64("TARGET_REVENUE"),
			ConversionRate:   v.GetFloat64("TARGET_CONVERSION_RATE"),
			DemoToPurchase:   v.GetFloat64("TARGET_DEMO_TO_PURCHASE"),
			JobsPlaced:       v.GetFloat64("TARGET_JOBS_PLACED"),
			AIAssistRequests: v.GetFloat64("TARGET_AI_ASSIST_REQUESTS"),
			PromoRequests:    v.GetFloat64("TARGET_PROMO_REQUESTS"),
		},
		OTEL: OTELConfig{
			Endpoint: v.GetString("OTEL_ENDPOINT"),
			Enabled:  v.GetBool("OTEL_ENABLED"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds <= 0 || c.Server.WriteTimeoutSeconds <= 0 {
		return fmt.Errorf("config: server timeouts must be positive")
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("config: DATASET_PATH must be set")
	}
	targets := map[string]float64{
		"TARGET_REVENUE":            c.Targets.Revenue,
		"TARGET_CONVERSION_RATE":    c.Targets.ConversionRate,
		"TARGET_DEMO_TO_PURCHASE":   c.Targets.DemoToPurchase,
		"TARGET_JOBS_PLACED":        c.Targets.JobsPlaced,
		"TARGET_AI_ASSIST_REQUESTS": c.Targets.AIAssistRequests,
		"TARGET_PROMO_REQUESTS":     c.Targets.PromoRequests,
	}
	for key, val := range targets {
		if val <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", key, val)
		}
	}
	return nil
}

// Addr returns the host:port the HTTP server listens on
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReadTimeout returns the server read timeout
func (c *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout
func (c *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// Origins returns the allowed CORS origins from the comma-separated config value.
func (c *ServerConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
