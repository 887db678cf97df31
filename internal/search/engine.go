package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/hubfare/internal/combiner"
	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/pricing"
	"github.com/dharmasatrya/hubfare/internal/ranking"
	"github.com/dharmasatrya/hubfare/internal/validator"
)

var ErrMissingReturnDate = errors.New("round-trip search requires a return date")

// LegQuerier fetches offers for a single leg. The gateway is the production
// implementation.
type LegQuerier interface {
	Query(ctx context.Context, q models.LegQuery) ([]models.LegOffer, error)
}

// SyntheticGenerator manufactures placeholder itineraries for a route. Its
// output is only used when a caller opts in and nothing real was found.
type SyntheticGenerator interface {
	Generate(route models.Route, p models.SearchParams) []models.Itinerary
}

type Config struct {
	Hub             string
	FallbackOffsets []int
	Synthetic       SyntheticGenerator
	Logger          *slog.Logger
}

var DefaultFallbackOffsets = []int{1, 2, 3, 4, 5, -1, -2, -3}

type Engine struct {
	legs      LegQuerier
	pricer    *pricing.Model
	ranker    ranking.Ranker
	combiner  *combiner.Combiner
	hub       string
	offsets   []int
	synthetic SyntheticGenerator
	logger    *slog.Logger
}

func NewEngine(legs LegQuerier, pricer *pricing.Model, ranker ranking.Ranker, comb *combiner.Combiner, cfg Config) *Engine {
	offsets := cfg.FallbackOffsets
	if offsets == nil {
		offsets = DefaultFallbackOffsets
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		legs:      legs,
		pricer:    pricer,
		ranker:    ranker,
		combiner:  comb,
		hub:       strings.ToUpper(cfg.Hub),
		offsets:   append([]int(nil), offsets...),
		synthetic: cfg.Synthetic,
		logger:    logger,
	}
}

func (e *Engine) Hub() string {
	return e.hub
}

func (e *Engine) SearchOneWay(ctx context.Context, p models.SearchParams) ([]models.Itinerary, error) {
	p.ReturnDate = nil
	return e.search(ctx, p, e.searchLogger(p))
}

func (e *Engine) SearchRoundTrip(ctx context.Context, p models.SearchParams) ([]models.Itinerary, error) {
	if p.ReturnDate == nil {
		return nil, ErrMissingReturnDate
	}
	return e.search(ctx, p, e.searchLogger(p))
}

func (e *Engine) searchLogger(p models.SearchParams) *slog.Logger {
	id := p.SearchID
	if id == "" {
		id = uuid.NewString()
	}
	return e.logger.With(slog.String("search_id", id))
}

func (e *Engine) route(p models.SearchParams) models.Route {
	return models.NewRoute(p.Origin, e.hub, p.Destination)
}

func (e *Engine) search(ctx context.Context, p models.SearchParams, logger *slog.Logger) ([]models.Itinerary, error) {
	if err := p.Rates.Validate(); err != nil {
		return nil, err
	}

	roles := models.OneWayRoles
	if p.IsRoundTrip() {
		roles = models.RoundTripRoles
	}

	started := time.Now()
	route := e.route(p)
	offers, err := e.fetchLegs(ctx, route, p, roles)
	if err != nil {
		return nil, err
	}

	for _, role := range roles {
		offers[role] = validator.Validate(offers[role], role, route)
		offers[role] = e.priceable(offers[role], role, logger)
		if !role.RequiresDirect() {
			offers[role] = e.ranker.Rank(offers[role])
		}
	}

	var itineraries []models.Itinerary
	if p.IsRoundTrip() {
		itineraries = e.combiner.RoundTrip(
			offers[models.OutboundToHub],
			offers[models.OutboundFromHub],
			offers[models.ReturnToHub],
			offers[models.ReturnFromHub],
			p.Rates,
		)
	} else {
		itineraries = e.combiner.OneWay(offers[models.OutboundToHub], offers[models.OutboundFromHub], p.Rates)
	}

	logger.Info("search finished",
		slog.String("origin", route.Origin),
		slog.String("destination", route.Destination),
		slog.String("departure_date", p.DepartureDate.Format(models.DateLayout)),
		slog.Bool("round_trip", p.IsRoundTrip()),
		slog.Int("itineraries", len(itineraries)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return itineraries, nil
}

// priceable drops offers whose fare currency the pricing model cannot convert.
func (e *Engine) priceable(offers []models.LegOffer, role models.LegRole, logger *slog.Logger) []models.LegOffer {
	kept := offers[:0:0]
	for _, o := range offers {
		if e.pricer.CanPrice(o) {
			kept = append(kept, o)
		}
	}
	if dropped := len(offers) - len(kept); dropped > 0 {
		logger.Warn("dropping offers in unsupported currency",
			slog.String("role", role.String()),
			slog.Int("count", dropped),
		)
	}
	return kept
}

// fetchLegs issues every role's query concurrently and waits for all of them.
// A leg that yields nothing is simply empty; only a provider that cannot be
// used at all fails the search.
func (e *Engine) fetchLegs(ctx context.Context, route models.Route, p models.SearchParams, roles []models.LegRole) (map[models.LegRole][]models.LegOffer, error) {
	type legResult struct {
		role   models.LegRole
		offers []models.LegOffer
		err    error
	}

	resultCh := make(chan legResult, len(roles))
	for _, role := range roles {
		q := e.legQuery(route, role, p)
		go func(role models.LegRole, q models.LegQuery) {
			offers, err := e.legs.Query(ctx, q)
			resultCh <- legResult{role: role, offers: offers, err: err}
		}(role, q)
	}

	offers := make(map[models.LegRole][]models.LegOffer, len(roles))
	var firstErr error
	for range roles {
		r := <-resultCh
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s leg: %w", r.role, r.err)
			}
			continue
		}
		offers[r.role] = r.offers
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return offers, nil
}

func (e *Engine) legQuery(route models.Route, role models.LegRole, p models.SearchParams) models.LegQuery {
	from, to := role.Endpoints(route)
	date := p.DepartureDate
	if (role == models.ReturnToHub || role == models.ReturnFromHub) && p.ReturnDate != nil {
		date = *p.ReturnDate
	}
	return models.LegQuery{
		Origin:      from,
		Destination: to,
		Date:        date,
		Passengers:  p.Passengers,
		CabinClass:  p.CabinClass,
		Currency:    e.pricer.ReferenceCurrency(),
	}
}
