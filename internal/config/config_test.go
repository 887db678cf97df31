package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/hubfare/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ALG", cfg.HubAirportCode)
	assert.Equal(t, "EUR", cfg.ReferenceCurrency)
	assert.Equal(t, "DZD", cfg.LocalCurrency)
	assert.Equal(t, 2*time.Hour, cfg.MinLayover)
	assert.Equal(t, 24*time.Hour, cfg.MaxLayover)
	assert.Equal(t, 20, cfg.MaxCombinations)
	assert.Equal(t, 170.0, cfg.CarrierCommercialRate)
	assert.Equal(t, 150.0, cfg.OfficialRate)
	assert.Equal(t, 260.0, cfg.ParallelRate)
	assert.Equal(t, []string{"AH"}, cfg.EligibleCarriers)
	assert.Equal(t, []int{1, 2, 3, 4, 5, -1, -2, -3}, cfg.DateFallbackOffsets)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.RetryBackoffStep)
	assert.Equal(t, "static", cfg.Provider)
	assert.False(t, cfg.CacheEnabled)
	assert.False(t, cfg.SyntheticEnabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HUB_AIRPORT_CODE", "orn")
	t.Setenv("MIN_LAYOVER_MINUTES", "90")
	t.Setenv("PARALLEL_RATE", "245.5")
	t.Setenv("ELIGIBLE_CARRIERS", "ah, sf ,")
	t.Setenv("DATE_FALLBACK_OFFSETS", "0, 1,-1")
	t.Setenv("RETRY_BACKOFF_STEP", "500ms")
	t.Setenv("PROVIDER", "HTTP")
	t.Setenv("FARES_API_URL", "https://fares.example.com")
	t.Setenv("SYNTHETIC_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "ORN", cfg.HubAirportCode)
	assert.Equal(t, 90*time.Minute, cfg.MinLayover)
	assert.Equal(t, 245.5, cfg.ParallelRate)
	assert.Equal(t, []string{"ah", "sf"}, cfg.EligibleCarriers)
	assert.Equal(t, []int{1, -1}, cfg.DateFallbackOffsets)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBackoffStep)
	assert.Equal(t, "http", cfg.Provider)
	assert.True(t, cfg.SyntheticEnabled)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"inverted layover window", map[string]string{"MIN_LAYOVER_MINUTES": "600", "MAX_LAYOVER_MINUTES": "120"}, "layover window"},
		{"zero parallel rate", map[string]string{"PARALLEL_RATE": "0"}, "exchange rates"},
		{"http without url", map[string]string{"PROVIDER": "http"}, "FARES_API_URL"},
		{"unknown provider", map[string]string{"PROVIDER": "carrier-pigeon"}, "unknown PROVIDER"},
		{"bad offsets", map[string]string{"DATE_FALLBACK_OFFSETS": "1,two"}, "DATE_FALLBACK_OFFSETS"},
		{"no attempts", map[string]string{"RETRY_MAX_ATTEMPTS": "0"}, "RETRY_MAX_ATTEMPTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
