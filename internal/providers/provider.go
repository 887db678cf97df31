package providers

import (
	"context"
	"errors"

	"github.com/dharmasatrya/hubfare/internal/models"
)

var (
	// ErrRateLimited is returned when the provider throttles the caller.
	ErrRateLimited = errors.New("rate limited")
	// ErrProviderUnavailable means the provider is not configured or cannot be reached at all.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

type Provider interface {
	Name() string
	SearchLegOffers(ctx context.Context, q models.LegQuery) ([]models.LegOffer, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
