package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmasatrya/hubfare/internal/models"
)

// FallbackResult is the outcome of a search widened to nearby dates. An
// empty Itineraries with a Message is a final answer, not a retryable error.
type FallbackResult struct {
	Itineraries       []models.Itinerary
	ActualDepartDate  time.Time
	ActualReturnDate  *time.Time
	IsAlternativeDate bool
	OffsetDays        int
	Attempts          int
	Synthetic         bool
	Message           string
}

// SearchWithDateFallback searches the requested dates, then each configured
// day offset in order, stopping at the first attempt that finds anything.
// Round trips shift both dates together. Attempts run one after another.
func (e *Engine) SearchWithDateFallback(ctx context.Context, p models.SearchParams) (*FallbackResult, error) {
	logger := e.searchLogger(p)
	offsets := append([]int{0}, e.offsets...)

	result := &FallbackResult{
		ActualDepartDate: p.DepartureDate,
		ActualReturnDate: p.ReturnDate,
	}

	for _, offset := range offsets {
		shifted := p.Shift(offset)
		result.Attempts++

		itineraries, err := e.search(ctx, shifted, logger.With(slog.Int("offset_days", offset)))
		if err != nil {
			return nil, err
		}
		if len(itineraries) == 0 {
			continue
		}

		result.Itineraries = itineraries
		result.ActualDepartDate = shifted.DepartureDate
		result.ActualReturnDate = shifted.ReturnDate
		result.OffsetDays = offset
		result.IsAlternativeDate = offset != 0
		if result.IsAlternativeDate {
			result.Message = fmt.Sprintf("No itinerary via %s on %s; showing %s (%+d days).",
				e.hub, p.DepartureDate.Format(models.DateLayout), shifted.DepartureDate.Format(models.DateLayout), offset)
		}
		return result, nil
	}

	result.Itineraries = []models.Itinerary{}
	result.Message = fmt.Sprintf("No itinerary via %s found on %s, even on nearby dates.",
		e.hub, p.DepartureDate.Format(models.DateLayout))

	if p.IncludeSynthetic && e.synthetic != nil {
		synthetic := e.synthetic.Generate(e.route(p), p)
		if len(synthetic) > 0 {
			result.Itineraries = synthetic
			result.Synthetic = true
			result.Message += " Showing sample itineraries built from typical schedules; they are not live fares."
			logger.Info("serving synthetic itineraries", slog.Int("itineraries", len(synthetic)))
		}
	}

	logger.Info("no itinerary after date fallback", slog.Int("attempts", result.Attempts))
	return result, nil
}
