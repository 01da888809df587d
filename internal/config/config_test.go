package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper to set env vars and clean up after
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old := os.Getenv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if old == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, old)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, 0.70, cfg.Risk.SafeThreshold)
	assert.Equal(t, 60*time.Minute, cfg.Risk.VelocityWindow)
	assert.Equal(t, 5, cfg.Risk.VelocityMaxCount)
	assert.Equal(t, 0.3, cfg.Risk.VelocityWeight)
	assert.Equal(t, 5.0, cfg.Risk.AnomalyMultiplier)
	assert.Equal(t, 24*time.Hour, cfg.Risk.BeneficiaryMaxAge)
	assert.Equal(t, 1000.0, cfg.Risk.BeneficiaryMinAmount)
	assert.Equal(t, 0.4, cfg.Risk.BeneficiaryWeight)
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, "PORT", "9090")
	setEnv(t, "RISK_SAFE_THRESHOLD", "0.5")
	setEnv(t, "RISK_VELOCITY_WINDOW", "30m")
	setEnv(t, "KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.5, cfg.Risk.SafeThreshold)
	assert.Equal(t, 30*time.Minute, cfg.Risk.VelocityWindow)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	setEnv(t, "RISK_SAFE_THRESHOLD", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RISK_SAFE_THRESHOLD")
}

func TestLoad_InvalidWeight(t *testing.T) {
	setEnv(t, "RISK_VELOCITY_WEIGHT", "-0.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RISK_VELOCITY_WEIGHT")
}

func TestLoad_MalformedValuesFallBackToDefaults(t *testing.T) {
	setEnv(t, "RISK_VELOCITY_MAX_COUNT", "not-a-number")
	setEnv(t, "RISK_VELOCITY_WINDOW", "sixty minutes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultVelocityMaxCount, cfg.Risk.VelocityMaxCount)
	assert.Equal(t, DefaultVelocityWindow, cfg.Risk.VelocityWindow)
}

func TestConfig_IsProduction(t *testing.T) {
	setEnv(t, "ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
