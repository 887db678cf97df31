// Package config loads the server configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	LogLevel string

	HubAirportCode    string
	ReferenceCurrency string
	LocalCurrency     string

	MinLayover      time.Duration
	MaxLayover      time.Duration
	MaxCombinations int

	// Local-currency units per reference-currency unit.
	CarrierCommercialRate float64
	OfficialRate          float64
	ParallelRate          float64
	EligibleCarriers      []string

	DateFallbackOffsets []int

	RetryMaxAttempts int
	RetryBackoffStep time.Duration

	Provider        string
	FaresAPIURL     string
	FaresAPIKey     string
	ProviderTimeout time.Duration
	ProviderRPS     float64
	ProviderBurst   int

	CacheEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisTTL      time.Duration

	SyntheticEnabled bool
}

// Load reads configuration. Values set in the process environment win over
// the .env file, which wins over the defaults below.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HUB_AIRPORT_CODE", "ALG")
	v.SetDefault("REFERENCE_CURRENCY", "EUR")
	v.SetDefault("LOCAL_CURRENCY", "DZD")
	v.SetDefault("MIN_LAYOVER_MINUTES", 120)
	v.SetDefault("MAX_LAYOVER_MINUTES", 1440)
	v.SetDefault("MAX_COMBINATIONS", 20)
	v.SetDefault("CARRIER_COMMERCIAL_RATE", 170)
	v.SetDefault("OFFICIAL_RATE", 150)
	v.SetDefault("PARALLEL_RATE", 260)
	v.SetDefault("ELIGIBLE_CARRIERS", "AH")
	v.SetDefault("DATE_FALLBACK_OFFSETS", "1,2,3,4,5,-1,-2,-3")
	v.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	v.SetDefault("RETRY_BACKOFF_STEP", "2s")
	v.SetDefault("PROVIDER", "static")
	v.SetDefault("FARES_API_URL", "")
	v.SetDefault("FARES_API_KEY", "")
	v.SetDefault("PROVIDER_TIMEOUT", "10s")
	v.SetDefault("PROVIDER_RPS", 5)
	v.SetDefault("PROVIDER_BURST", 8)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_TTL", "5m")
	v.SetDefault("SYNTHETIC_ENABLED", false)
	v.AutomaticEnv()

	offsets, err := parseOffsets(v.GetString("DATE_FALLBACK_OFFSETS"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                  v.GetString("PORT"),
		LogLevel:              strings.ToLower(v.GetString("LOG_LEVEL")),
		HubAirportCode:        strings.ToUpper(v.GetString("HUB_AIRPORT_CODE")),
		ReferenceCurrency:     strings.ToUpper(v.GetString("REFERENCE_CURRENCY")),
		LocalCurrency:         strings.ToUpper(v.GetString("LOCAL_CURRENCY")),
		MinLayover:            time.Duration(v.GetInt("MIN_LAYOVER_MINUTES")) * time.Minute,
		MaxLayover:            time.Duration(v.GetInt("MAX_LAYOVER_MINUTES")) * time.Minute,
		MaxCombinations:       v.GetInt("MAX_COMBINATIONS"),
		CarrierCommercialRate: v.GetFloat64("CARRIER_COMMERCIAL_RATE"),
		OfficialRate:          v.GetFloat64("OFFICIAL_RATE"),
		ParallelRate:          v.GetFloat64("PARALLEL_RATE"),
		EligibleCarriers:      splitCSV(v.GetString("ELIGIBLE_CARRIERS")),
		DateFallbackOffsets:   offsets,
		RetryMaxAttempts:      v.GetInt("RETRY_MAX_ATTEMPTS"),
		RetryBackoffStep:      v.GetDuration("RETRY_BACKOFF_STEP"),
		Provider:              strings.ToLower(v.GetString("PROVIDER")),
		FaresAPIURL:           v.GetString("FARES_API_URL"),
		FaresAPIKey:           v.GetString("FARES_API_KEY"),
		ProviderTimeout:       v.GetDuration("PROVIDER_TIMEOUT"),
		ProviderRPS:           v.GetFloat64("PROVIDER_RPS"),
		ProviderBurst:         v.GetInt("PROVIDER_BURST"),
		CacheEnabled:          v.GetBool("CACHE_ENABLED"),
		RedisHost:             v.GetString("REDIS_HOST"),
		RedisPort:             v.GetString("REDIS_PORT"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RedisTTL:              v.GetDuration("REDIS_TTL"),
		SyntheticEnabled:      v.GetBool("SYNTHETIC_ENABLED"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []string
	if c.HubAirportCode == "" {
		problems = append(problems, "HUB_AIRPORT_CODE is empty")
	}
	if c.MinLayover < 0 || c.MaxLayover <= 0 || c.MinLayover > c.MaxLayover {
		problems = append(problems, "layover window must satisfy 0 <= MIN_LAYOVER_MINUTES <= MAX_LAYOVER_MINUTES")
	}
	if c.MaxCombinations <= 0 {
		problems = append(problems, "MAX_COMBINATIONS must be positive")
	}
	if c.CarrierCommercialRate <= 0 || c.OfficialRate <= 0 || c.ParallelRate <= 0 {
		problems = append(problems, "exchange rates must be positive")
	}
	if c.RetryMaxAttempts < 1 {
		problems = append(problems, "RETRY_MAX_ATTEMPTS must be at least 1")
	}
	switch c.Provider {
	case "static":
	case "http":
		if c.FaresAPIURL == "" {
			problems = append(problems, "FARES_API_URL is required when PROVIDER=http")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown PROVIDER %q", c.Provider))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func parseOffsets(s string) ([]int, error) {
	parts := splitCSV(s)
	offsets := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("DATE_FALLBACK_OFFSETS: %q is not a day count", p)
		}
		if n == 0 {
			continue
		}
		offsets = append(offsets, n)
	}
	return offsets, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
