// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Database (optional, uses in-memory stores if not set)
	DatabaseURL string

	// Eventing (optional, disabled if empty)
	KafkaBrokers []string

	// Tracing (optional, disabled if empty)
	OTLPEndpoint string

	// HTTP
	CORSOrigins  []string
	RateLimitRPM int

	// Risk rule tunables
	Risk RiskRules
}

// RiskRules carries the rule thresholds and weights. Defaults reproduce the
// production scoring behavior; override via env only to tune or test.
type RiskRules struct {
	SafeThreshold        float64
	VelocityWindow       time.Duration
	VelocityMaxCount     int
	VelocityWeight       float64
	AnomalyMultiplier    float64
	AnomalyWeight        float64
	BeneficiaryMaxAge    time.Duration
	BeneficiaryMinAmount float64
	BeneficiaryWeight    float64
}

// Defaults.
const (
	DefaultPort      = "8080"
	DefaultEnv       = "development"
	DefaultLogLevel  = "info"
	DefaultRateLimit = 120

	DefaultSafeThreshold        = 0.70
	DefaultVelocityWindow       = 60 * time.Minute
	DefaultVelocityMaxCount     = 5
	DefaultVelocityWeight       = 0.3
	DefaultAnomalyMultiplier    = 5.0
	DefaultAnomalyWeight        = 0.3
	DefaultBeneficiaryMaxAge    = 24 * time.Hour
	DefaultBeneficiaryMinAmount = 1000.0
	DefaultBeneficiaryWeight    = 0.4
)

// Load reads configuration from environment variables.
// It loads a .env file if present (for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", DefaultPort),
		Env:          getEnv("ENV", DefaultEnv),
		LogLevel:     getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM: getEnvInt("RATE_LIMIT_RPM", DefaultRateLimit),
		Risk: RiskRules{
			SafeThreshold:        getEnvFloat("RISK_SAFE_THRESHOLD", DefaultSafeThreshold),
			VelocityWindow:       getEnvDuration("RISK_VELOCITY_WINDOW", DefaultVelocityWindow),
			VelocityMaxCount:     getEnvInt("RISK_VELOCITY_MAX_COUNT", DefaultVelocityMaxCount),
			VelocityWeight:       getEnvFloat("RISK_VELOCITY_WEIGHT", DefaultVelocityWeight),
			AnomalyMultiplier:    getEnvFloat("RISK_ANOMALY_MULTIPLIER", DefaultAnomalyMultiplier),
			AnomalyWeight:        getEnvFloat("RISK_ANOMALY_WEIGHT", DefaultAnomalyWeight),
			BeneficiaryMaxAge:    getEnvDuration("RISK_BENEFICIARY_MAX_AGE", DefaultBeneficiaryMaxAge),
			BeneficiaryMinAmount: getEnvFloat("RISK_BENEFICIARY_MIN_AMOUNT", DefaultBeneficiaryMinAmount),
			BeneficiaryWeight:    getEnvFloat("RISK_BENEFICIARY_WEIGHT", DefaultBeneficiaryWeight),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Risk.SafeThreshold <= 0 {
		return fmt.Errorf("RISK_SAFE_THRESHOLD must be positive")
	}
	if c.Risk.VelocityMaxCount < 1 {
		return fmt.Errorf("RISK_VELOCITY_MAX_COUNT must be at least 1")
	}
	if c.Risk.VelocityWindow <= 0 {
		return fmt.Errorf("RISK_VELOCITY_WINDOW must be positive")
	}
	if c.Risk.AnomalyMultiplier <= 0 {
		return fmt.Errorf("RISK_ANOMALY_MULTIPLIER must be positive")
	}
	if c.Risk.BeneficiaryMaxAge <= 0 {
		return fmt.Errorf("RISK_BENEFICIARY_MAX_AGE must be positive")
	}
	for name, w := range map[string]float64{
		"RISK_VELOCITY_WEIGHT":    c.Risk.VelocityWeight,
		"RISK_ANOMALY_WEIGHT":     c.Risk.AnomalyWeight,
		"RISK_BENEFICIARY_WEIGHT": c.Risk.BeneficiaryWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	if c.RateLimitRPM < 1 {
		return fmt.Errorf("RATE_LIMIT_RPM must be at least 1")
	}
	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
