package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/providers/data"
	"github.com/dharmasatrya/hubfare/internal/timezone"
)

type scheduleResponse struct {
	Schedules []scheduledFlight `json:"schedules"`
}

type scheduledFlight struct {
	FlightCode       string             `json:"flight_code"`
	Carrier          scheduleCarrier    `json:"carrier"`
	Origin           string             `json:"origin"`
	Destination      string             `json:"destination"`
	Departs          string             `json:"departs"`
	Arrives          string             `json:"arrives"`
	ArrivalDayOffset int                `json:"arrival_day_offset"`
	Stopovers        []scheduleStopover `json:"stopovers"`
	Fares            map[string]float64 `json:"fares"`
	Currency         string             `json:"currency"`
	Baggage          scheduleBaggage    `json:"baggage"`
	Days             []int              `json:"days,omitempty"`
}

type scheduleCarrier struct {
	IATA     string `json:"iata"`
	FullName string `json:"full_name"`
}

type scheduleStopover struct {
	AirportCode string `json:"airport_code"`
	CityName    string `json:"city_name"`
	WaitTime    int    `json:"wait_time"`
}

type scheduleBaggage struct {
	Cabin string `json:"cabin"`
	Hold  string `json:"hold"`
}

type StaticOptions struct {
	// Latency is the maximum simulated response delay.
	Latency time.Duration
	// RateLimitRate is the probability that a call reports ErrRateLimited.
	RateLimitRate float64
}

// StaticProvider serves offers from the embedded weekly schedule.
type StaticProvider struct {
	schedules []scheduledFlight
	opts      StaticOptions
}

func NewStaticProvider(opts StaticOptions) (*StaticProvider, error) {
	return NewStaticProviderFromJSON(data.Schedules, opts)
}

func NewStaticProviderFromJSON(raw []byte, opts StaticOptions) (*StaticProvider, error) {
	var resp scheduleResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	return &StaticProvider{schedules: resp.Schedules, opts: opts}, nil
}

func (p *StaticProvider) Name() string {
	return "static"
}

func (p *StaticProvider) SearchLegOffers(ctx context.Context, q models.LegQuery) ([]models.LegOffer, error) {
	if p.opts.Latency > 0 {
		delay := time.Duration(rand.Int63n(int64(p.opts.Latency)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.opts.RateLimitRate > 0 && rand.Float64() < p.opts.RateLimitRate {
		return nil, NewProviderError(p.Name(), ErrRateLimited)
	}

	var results []models.LegOffer
	for _, f := range p.schedules {
		if !strings.EqualFold(f.Origin, q.Origin) || !strings.EqualFold(f.Destination, q.Destination) {
			continue
		}
		if !operatesOn(f.Days, q.Date.Weekday()) {
			continue
		}
		fare, ok := f.Fares[strings.ToLower(q.CabinClass)]
		if !ok {
			continue
		}

		offer, err := p.normalize(f, q, fare)
		if err != nil {
			continue
		}
		results = append(results, offer)
	}

	return results, nil
}

func (p *StaticProvider) normalize(f scheduledFlight, q models.LegQuery, fare float64) (models.LegOffer, error) {
	depTime, err := timezone.At(q.Date, f.Departs, f.Origin)
	if err != nil {
		return models.LegOffer{}, err
	}

	arrTime, err := timezone.At(q.Date.AddDate(0, 0, f.ArrivalDayOffset), f.Arrives, f.Destination)
	if err != nil {
		return models.LegOffer{}, err
	}
	if !arrTime.After(depTime) {
		return models.LegOffer{}, fmt.Errorf("flight %s arrives before it departs", f.FlightCode)
	}

	segments := buildSegments(f)

	passengers := q.Passengers
	if passengers <= 0 {
		passengers = 1
	}
	amount := decimal.NewFromFloat(fare).Mul(decimal.NewFromInt(int64(passengers)))

	return models.LegOffer{
		ID:              fmt.Sprintf("%s-%s-%s", p.Name(), f.FlightCode, q.DateString()),
		Provider:        p.Name(),
		CarrierCode:     f.Carrier.IATA,
		CarrierName:     f.Carrier.FullName,
		FlightNumber:    f.FlightCode,
		Origin:          strings.ToUpper(f.Origin),
		Destination:     strings.ToUpper(f.Destination),
		DepartureTime:   depTime,
		ArrivalTime:     arrTime,
		DurationMinutes: int(arrTime.Sub(depTime).Minutes()),
		Stops:           len(f.Stopovers),
		Segments:        segments,
		Fare: models.Money{
			Amount:   amount,
			Currency: strings.ToUpper(f.Currency),
		},
		Baggage: models.Baggage{
			CabinKg:   parseBaggageWeight(f.Baggage.Cabin),
			CheckedKg: parseBaggageWeight(f.Baggage.Hold),
			Info:      strings.TrimSpace(f.Baggage.Cabin + " cabin, " + f.Baggage.Hold + " hold"),
		},
	}, nil
}

func buildSegments(f scheduledFlight) []models.Segment {
	points := []string{f.Origin}
	for _, s := range f.Stopovers {
		points = append(points, s.AirportCode)
	}
	points = append(points, f.Destination)

	segments := make([]models.Segment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		segments = append(segments, models.Segment{
			Origin:      points[i],
			Destination: points[i+1],
			Carrier:     f.Carrier.IATA,
		})
	}
	return segments
}

// operatesOn checks ISO weekdays (1 = Monday .. 7 = Sunday); no days means daily.
func operatesOn(days []int, wd time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	iso := int(wd)
	if iso == 0 {
		iso = 7
	}
	for _, d := range days {
		if d == iso {
			return true
		}
	}
	return false
}

var baggageWeightRe = regexp.MustCompile(`(?:(\d+)\s*x\s*)?(\d+(?:\.\d+)?)\s*kg`)

func parseBaggageWeight(s string) float64 {
	matches := baggageWeightRe.FindStringSubmatch(strings.ToLower(s))
	if len(matches) < 3 {
		return 0
	}
	v, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return 0
	}
	if matches[1] != "" {
		if pieces, err := strconv.Atoi(matches[1]); err == nil {
			v *= float64(pieces)
		}
	}
	return v
}
