package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TIMEZONE", "")
	t.Setenv("SWEEP_AT", "")
	t.Setenv("SWEEP_ENABLED", "")
	t.Setenv("RATE_LIMIT_MAX", "")

	cfg := Load()

	assert.Equal(t, "America/Winnipeg", cfg.Timezone)
	assert.Equal(t, "08:00", cfg.SweepAt)
	assert.True(t, cfg.SweepEnabled)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, time.Hour, cfg.DocumentURLExpiry)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SWEEP_ENABLED", "false")
	t.Setenv("SWEEP_LOCK_TTL", "5m")
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")

	cfg := Load()

	assert.False(t, cfg.SweepEnabled)
	assert.Equal(t, 5*time.Minute, cfg.SweepLockTTL)
	assert.Equal(t, 100, cfg.RateLimitMax)
}

func TestConfig_Location(t *testing.T) {
	cfg := &Config{Timezone: "America/Winnipeg"}
	loc := cfg.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/Winnipeg", loc.String())

	cfg.Timezone = "Nowhere/Invalid"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("debug"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("loud"))
}
