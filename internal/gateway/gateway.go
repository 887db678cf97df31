// Package gateway issues single-leg fare queries against a provider and
// absorbs transient failures.
//
// A query that keeps failing after the retry policy is exhausted yields an
// empty offer list rather than an error: "no data" and "data unavailable" are
// the same thing to the search engine. Only ErrProviderUnavailable and context
// cancellation are returned to the caller.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dharmasatrya/hubfare/internal/cache"
	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/providers"
	"github.com/dharmasatrya/hubfare/internal/ratelimit"
)

type Config struct {
	Retry   RetryPolicy
	Sleeper Sleeper
	Limiter *ratelimit.ProviderLimiter
	Cache   cache.Cache
	Logger  *slog.Logger
}

type Gateway struct {
	provider providers.Provider
	retry    RetryPolicy
	sleeper  Sleeper
	limiter  *ratelimit.ProviderLimiter
	cache    cache.Cache
	logger   *slog.Logger
}

func New(provider providers.Provider, cfg Config) *Gateway {
	if cfg.Retry.MaxAttempts == 0 && cfg.Retry.Backoff == nil {
		cfg.Retry = DefaultRetryPolicy()
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = RealSleeper
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNoOpCache()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Gateway{
		provider: provider,
		retry:    cfg.Retry,
		sleeper:  cfg.Sleeper,
		limiter:  cfg.Limiter,
		cache:    cfg.Cache,
		logger:   cfg.Logger,
	}
}

func (g *Gateway) Query(ctx context.Context, q models.LegQuery) ([]models.LegOffer, error) {
	if g == nil || g.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	name := g.provider.Name()

	if offers, ok := g.cache.Get(ctx, name, q); ok {
		return offers, nil
	}

	logger := g.logger.With(
		slog.String("provider", name),
		slog.String("origin", q.Origin),
		slog.String("destination", q.Destination),
		slog.String("date", q.DateString()),
	)

	attempts := g.retry.attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx, name); err != nil {
				return nil, err
			}
		}

		offers, err := g.provider.SearchLegOffers(ctx, q)
		if err == nil {
			if len(offers) > 0 {
				if cerr := g.cache.Set(ctx, name, q, offers); cerr != nil {
					logger.Warn("cache write failed", slog.Any("error", cerr))
				}
			}
			return offers, nil
		}

		if errors.Is(err, providers.ErrProviderUnavailable) {
			return nil, fmt.Errorf("query %s->%s: %w", q.Origin, q.Destination, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		logger.Warn("leg query failed",
			slog.Int("attempt", attempt),
			slog.Bool("rate_limited", errors.Is(err, providers.ErrRateLimited)),
			slog.Any("error", err),
		)

		if delay := g.retry.Delay(attempt); delay > 0 {
			if err := g.sleeper.Sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	logger.Warn("leg query gave up, treating as no offers",
		slog.Int("attempts", attempts),
		slog.Any("error", lastErr),
	)
	return []models.LegOffer{}, nil
}
