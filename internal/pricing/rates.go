package pricing

import (
	"sync/atomic"

	"github.com/dharmasatrya/hubfare/internal/models"
)

// RateBook holds the process-wide default exchange-rate profile. Searches take
// a snapshot with Current when they start, so a Set never changes the rates
// of a search already in flight.
type RateBook struct {
	current atomic.Pointer[models.ExchangeRateProfile]
}

func NewRateBook(initial models.ExchangeRateProfile) (*RateBook, error) {
	b := &RateBook{}
	if err := b.Set(initial); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *RateBook) Current() models.ExchangeRateProfile {
	return *b.current.Load()
}

func (b *RateBook) Set(p models.ExchangeRateProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.current.Store(&p)
	return nil
}
