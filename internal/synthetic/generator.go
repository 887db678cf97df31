// Package synthetic builds clearly labelled sample itineraries for routes
// where no provider returned anything. Callers must opt in; the output is
// never mixed with live search results.
package synthetic

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/combiner"
	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/timezone"
)

type Config struct {
	// Carrier is the code used for the generated legs.
	Carrier  string
	Currency string
	// FlightsPerLeg is how many departures are generated per leg role.
	FlightsPerLeg int
}

func DefaultConfig() Config {
	return Config{Carrier: "AH", Currency: "EUR", FlightsPerLeg: 3}
}

type Generator struct {
	cfg      Config
	combiner *combiner.Combiner
}

// NewGenerator expects a combiner built with combiner.RelaxedConfig.
func NewGenerator(cfg Config, comb *combiner.Combiner) *Generator {
	def := DefaultConfig()
	if cfg.Carrier == "" {
		cfg.Carrier = def.Carrier
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	if cfg.FlightsPerLeg <= 0 {
		cfg.FlightsPerLeg = def.FlightsPerLeg
	}
	return &Generator{cfg: cfg, combiner: comb}
}

// departure slots, as local hour of day, for hub-bound and hub-departing legs
var (
	toHubHours   = []int{6, 9, 12, 15}
	fromHubHours = []int{13, 16, 19, 22}
)

// Generate is deterministic for a given route and dates.
func (g *Generator) Generate(route models.Route, p models.SearchParams) []models.Itinerary {
	rng := rand.New(rand.NewSource(seed(route, p)))

	toHub := g.legs(rng, models.OutboundToHub, route, p.DepartureDate, p.Passengers)
	fromHub := g.legs(rng, models.OutboundFromHub, route, p.DepartureDate, p.Passengers)

	var itineraries []models.Itinerary
	if p.ReturnDate != nil {
		retToHub := g.legs(rng, models.ReturnToHub, route, *p.ReturnDate, p.Passengers)
		retFromHub := g.legs(rng, models.ReturnFromHub, route, *p.ReturnDate, p.Passengers)
		itineraries = g.combiner.RoundTrip(toHub, fromHub, retToHub, retFromHub, p.Rates)
	} else {
		itineraries = g.combiner.OneWay(toHub, fromHub, p.Rates)
	}

	for i := range itineraries {
		itineraries[i].Synthetic = true
	}
	return itineraries
}

func (g *Generator) legs(rng *rand.Rand, role models.LegRole, route models.Route, date time.Time, passengers int) []models.LegOffer {
	from, to := role.Endpoints(route)
	hours := toHubHours
	if role.DepartsHub() {
		hours = fromHubHours
	}
	if passengers <= 0 {
		passengers = 1
	}

	n := g.cfg.FlightsPerLeg
	if n > len(hours) {
		n = len(hours)
	}

	offers := make([]models.LegOffer, 0, n)
	for i := 0; i < n; i++ {
		dep, err := timezone.At(date, fmt.Sprintf("%02d:%02d", hours[i], rng.Intn(4)*15), from)
		if err != nil {
			continue
		}
		duration := time.Duration(120+rng.Intn(240)) * time.Minute
		fare := decimal.NewFromInt(int64(80 + rng.Intn(170))).Mul(decimal.NewFromInt(int64(passengers)))
		flightNumber := fmt.Sprintf("SYN-%s%d%d", g.cfg.Carrier, int(role)+1, 100+i)

		offers = append(offers, models.LegOffer{
			ID:              fmt.Sprintf("synthetic-%s-%s", flightNumber, date.Format(models.DateLayout)),
			Provider:        "synthetic",
			CarrierCode:     g.cfg.Carrier,
			FlightNumber:    flightNumber,
			Origin:          from,
			Destination:     to,
			DepartureTime:   dep,
			ArrivalTime:     dep.Add(duration),
			DurationMinutes: int(duration.Minutes()),
			Fare:            models.Money{Amount: fare, Currency: g.cfg.Currency},
		})
	}
	return offers
}

func seed(route models.Route, p models.SearchParams) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s|%s|%s|%s", route.Origin, route.Hub, route.Destination, p.DepartureDate.Format(models.DateLayout))
	if p.ReturnDate != nil {
		_, _ = fmt.Fprintf(h, "|%s", p.ReturnDate.Format(models.DateLayout))
	}
	return int64(h.Sum64())
}
