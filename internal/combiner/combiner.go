// Package combiner chains validated legs through the hub into itineraries.
//
// Exploration stops at MaxCombinations itineraries. Valid combinations past
// the cap are never visited, which is why the flexible leg lists are ranked
// before they reach the combiner.
package combiner

import (
	"time"

	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/pricing"
	"github.com/dharmasatrya/hubfare/internal/ranking"
)

type Config struct {
	MinLayover      time.Duration
	MaxLayover      time.Duration
	MaxCombinations int
}

func DefaultConfig() Config {
	return Config{
		MinLayover:      2 * time.Hour,
		MaxLayover:      24 * time.Hour,
		MaxCombinations: 20,
	}
}

// RelaxedConfig is the wider window used by the synthetic generator.
func RelaxedConfig() Config {
	cfg := DefaultConfig()
	cfg.MinLayover = time.Hour
	return cfg
}

type Combiner struct {
	cfg    Config
	pricer *pricing.Model
	ranker ranking.Ranker
	hub    string
}

func New(cfg Config, pricer *pricing.Model, ranker ranking.Ranker, hub string) *Combiner {
	def := DefaultConfig()
	if cfg.MaxCombinations <= 0 {
		cfg.MaxCombinations = def.MaxCombinations
	}
	if cfg.MaxLayover <= 0 {
		cfg.MaxLayover = def.MaxLayover
	}
	if cfg.MinLayover < 0 {
		cfg.MinLayover = 0
	}
	return &Combiner{cfg: cfg, pricer: pricer, ranker: ranker, hub: hub}
}

func (c *Combiner) Config() Config {
	return c.cfg
}

// Layover returns the wait at the hub between two chained legs and whether
// it fits the configured window.
func (c *Combiner) Layover(arriving, departing models.LegOffer) (time.Duration, bool) {
	d := departing.DepartureTime.Sub(arriving.ArrivalTime)
	return d, d >= c.cfg.MinLayover && d <= c.cfg.MaxLayover
}

// OneWay pairs hub-bound legs (outer loop) with hub-departing legs (inner
// loop).
func (c *Combiner) OneWay(toHub, fromHub []models.LegOffer, rates models.ExchangeRateProfile) []models.Itinerary {
	result := make([]models.Itinerary, 0)

	for _, in := range toHub {
		for _, out := range fromHub {
			if len(result) >= c.cfg.MaxCombinations {
				return result
			}
			wait, ok := c.Layover(in, out)
			if !ok {
				continue
			}
			legs := []models.PricedLeg{
				c.pricer.PriceLeg(models.OutboundToHub, in, rates),
				c.pricer.PriceLeg(models.OutboundFromHub, out, rates),
			}
			result = append(result, c.pricer.Itinerary(models.OneWay, legs, models.NewLayover(wait, c.hub), nil))
		}
	}

	return result
}

type returnPair struct {
	legs    [2]models.PricedLeg
	layover time.Duration
	rank    ranking.Pair
}

// RoundTrip builds outbound pairs as OneWay does and attaches to each the
// single best return pair. An outbound pair without any valid return pair is
// dropped.
func (c *Combiner) RoundTrip(toHub, fromHub, retToHub, retFromHub []models.LegOffer, rates models.ExchangeRateProfile) []models.Itinerary {
	result := make([]models.Itinerary, 0)

	returns := c.returnPairs(retToHub, retFromHub, rates)
	if len(returns) == 0 {
		return result
	}

	for _, in := range toHub {
		for _, out := range fromHub {
			if len(result) >= c.cfg.MaxCombinations {
				return result
			}
			wait, ok := c.Layover(in, out)
			if !ok {
				continue
			}

			best, found := c.bestReturn(out, returns)
			if !found {
				continue
			}

			legs := []models.PricedLeg{
				c.pricer.PriceLeg(models.OutboundToHub, in, rates),
				c.pricer.PriceLeg(models.OutboundFromHub, out, rates),
				best.legs[0],
				best.legs[1],
			}
			retLayover := models.NewLayover(best.layover, c.hub)
			result = append(result, c.pricer.Itinerary(models.RoundTrip, legs, models.NewLayover(wait, c.hub), &retLayover))
		}
	}

	return result
}

func (c *Combiner) returnPairs(retToHub, retFromHub []models.LegOffer, rates models.ExchangeRateProfile) []returnPair {
	var pairs []returnPair
	for _, in := range retToHub {
		for _, out := range retFromHub {
			wait, ok := c.Layover(in, out)
			if !ok {
				continue
			}
			first := c.pricer.PriceLeg(models.ReturnToHub, in, rates)
			second := c.pricer.PriceLeg(models.ReturnFromHub, out, rates)
			price := first.Price.Amount.Amount.Add(second.Price.Amount.Amount)
			pairs = append(pairs, returnPair{
				legs:    [2]models.PricedLeg{first, second},
				layover: wait,
				rank:    c.ranker.NewPair(in, out, price),
			})
		}
	}
	return pairs
}

// bestReturn scans every return pair that leaves the destination after the
// outbound trip has landed there.
func (c *Combiner) bestReturn(outbound models.LegOffer, pairs []returnPair) (returnPair, bool) {
	var best returnPair
	found := false
	for _, p := range pairs {
		if !p.legs[0].Offer.DepartureTime.After(outbound.ArrivalTime) {
			continue
		}
		if !found || ranking.BetterPair(p.rank, best.rank) {
			best = p
			found = true
		}
	}
	return best, found
}
