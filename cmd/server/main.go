package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/cache"
	"github.com/dharmasatrya/hubfare/internal/combiner"
	"github.com/dharmasatrya/hubfare/internal/config"
	"github.com/dharmasatrya/hubfare/internal/gateway"
	"github.com/dharmasatrya/hubfare/internal/handler"
	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/pricing"
	"github.com/dharmasatrya/hubfare/internal/providers"
	"github.com/dharmasatrya/hubfare/internal/ranking"
	"github.com/dharmasatrya/hubfare/internal/ratelimit"
	"github.com/dharmasatrya/hubfare/internal/search"
	"github.com/dharmasatrya/hubfare/internal/synthetic"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	provider, err := initializeProvider(cfg)
	if err != nil {
		logger.Error("failed to initialize provider", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("fare provider ready", slog.String("provider", provider.Name()))

	legCache := initializeCache(cfg, logger)
	defer legCache.Close()

	limiter := ratelimit.NewProviderLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.ProviderRPS,
		BurstSize:         cfg.ProviderBurst,
	})

	gw := gateway.New(provider, gateway.Config{
		Retry: gateway.RetryPolicy{
			MaxAttempts: cfg.RetryMaxAttempts,
			Backoff:     gateway.LinearBackoff(cfg.RetryBackoffStep),
		},
		Limiter: limiter,
		Cache:   legCache,
		Logger:  logger,
	})

	eligibility := pricing.NewCarrierSet(cfg.EligibleCarriers...)
	pricer := pricing.NewModel(pricing.Config{
		ReferenceCurrency:     cfg.ReferenceCurrency,
		LocalCurrency:         cfg.LocalCurrency,
		CarrierCommercialRate: decimal.NewFromFloat(cfg.CarrierCommercialRate),
	}, eligibility)
	ranker := ranking.NewRanker(eligibility).WithFaceValue(pricer)

	comb := combiner.New(combiner.Config{
		MinLayover:      cfg.MinLayover,
		MaxLayover:      cfg.MaxLayover,
		MaxCombinations: cfg.MaxCombinations,
	}, pricer, ranker, cfg.HubAirportCode)

	engineCfg := search.Config{
		Hub:             cfg.HubAirportCode,
		FallbackOffsets: cfg.DateFallbackOffsets,
		Logger:          logger,
	}
	if cfg.SyntheticEnabled {
		relaxed := combiner.New(combiner.RelaxedConfig(), pricer, ranker, cfg.HubAirportCode)
		engineCfg.Synthetic = synthetic.NewGenerator(synthetic.Config{
			Carrier:  firstOr(cfg.EligibleCarriers, "AH"),
			Currency: cfg.ReferenceCurrency,
		}, relaxed)
	}
	engine := search.NewEngine(gw, pricer, ranker, comb, engineCfg)

	rates, err := pricing.NewRateBook(models.ExchangeRateProfile{
		ParallelRate: decimal.NewFromFloat(cfg.ParallelRate),
		OfficialRate: decimal.NewFromFloat(cfg.OfficialRate),
	})
	if err != nil {
		logger.Error("invalid default exchange rates", slog.Any("error", err))
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	searchHandler := handler.NewSearchHandler(engine, rates, logger)

	api := e.Group("/api/v1")
	api.POST("/itineraries/search", searchHandler.Search)
	api.GET("/rates", searchHandler.GetRates)
	api.PUT("/rates", searchHandler.UpdateRates)
	e.GET("/health", handler.HealthHandler)

	go func() {
		logger.Info("starting itinerary search server",
			slog.String("port", cfg.Port),
			slog.String("hub", cfg.HubAirportCode),
		)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request completed", attrs...)
			return nil
		},
	})
}

func initializeProvider(cfg config.Config) (providers.Provider, error) {
	switch cfg.Provider {
	case "http":
		return providers.NewHTTPProvider(providers.HTTPConfig{
			BaseURL: cfg.FaresAPIURL,
			APIKey:  cfg.FaresAPIKey,
			Timeout: cfg.ProviderTimeout,
		}), nil
	default:
		return providers.NewStaticProvider(providers.StaticOptions{})
	}
}

func initializeCache(cfg config.Config, logger *slog.Logger) cache.Cache {
	if !cfg.CacheEnabled {
		logger.Info("leg offer cache disabled")
		return cache.NewNoOpCache()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		TTL:      cfg.RedisTTL,
	})
	if err != nil {
		logger.Error("failed to connect to Redis", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("leg offer cache enabled",
		slog.String("addr", cfg.RedisHost+":"+cfg.RedisPort),
		slog.Duration("ttl", cfg.RedisTTL),
	)
	return redisCache
}

func firstOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[0]
}
