package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/timezone"
)

type offersResponse struct {
	Data []apiOffer `json:"data"`
}

type apiOffer struct {
	ID            string       `json:"id"`
	Carrier       apiCarrier   `json:"carrier"`
	FlightNumber  string       `json:"flight_number"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureAt   string       `json:"departure_at"`
	ArrivalAt     string       `json:"arrival_at"`
	DurationMins  int          `json:"duration_minutes"`
	NumberOfStops *int         `json:"number_of_stops,omitempty"`
	Segments      []apiSegment `json:"segments,omitempty"`
	Price         apiPrice     `json:"price"`
	Baggage       string       `json:"baggage,omitempty"`
}

type apiCarrier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type apiSegment struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Carrier string `json:"carrier"`
}

type apiPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPProvider queries a JSON fare API for single-leg offers.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(cfg HTTPConfig) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Name() string {
	return "fareapi"
}

func (p *HTTPProvider) SearchLegOffers(ctx context.Context, q models.LegQuery) ([]models.LegOffer, error) {
	if p.baseURL == "" {
		return nil, NewProviderError(p.Name(), ErrProviderUnavailable)
	}

	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination)
	params.Set("date", q.DateString())
	params.Set("adults", strconv.Itoa(q.Passengers))
	params.Set("cabin", q.CabinClass)
	if q.Currency != "" {
		params.Set("currency", q.Currency)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/offers?"+params.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if unreachable(err) {
			return nil, NewProviderError(p.Name(), fmt.Errorf("%w: %v", ErrProviderUnavailable, err))
		}
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewProviderError(p.Name(), ErrRateLimited)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewProviderError(p.Name(), fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode))
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewProviderError(p.Name(), fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewProviderError(p.Name(), fmt.Errorf("decode offers: %w", err))
	}

	results := make([]models.LegOffer, 0, len(payload.Data))
	for _, o := range payload.Data {
		offer, err := p.normalize(o)
		if err != nil {
			continue
		}
		results = append(results, offer)
	}
	return results, nil
}

// unreachable reports transport errors meaning the API cannot be contacted at
// all. Dropped connections and timeouts from a reachable host are transient.
func unreachable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return !dnsErr.Timeout()
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial" && !opErr.Timeout()
	}
	return false
}

func (p *HTTPProvider) normalize(o apiOffer) (models.LegOffer, error) {
	depTime, err := timezone.ParseLocal(o.DepartureAt, o.Origin)
	if err != nil {
		return models.LegOffer{}, err
	}
	arrTime, err := timezone.ParseLocal(o.ArrivalAt, o.Destination)
	if err != nil {
		return models.LegOffer{}, err
	}
	amount, err := decimal.NewFromString(o.Price.Total)
	if err != nil {
		return models.LegOffer{}, fmt.Errorf("price %q: %w", o.Price.Total, err)
	}

	segments := make([]models.Segment, len(o.Segments))
	for i, s := range o.Segments {
		segments[i] = models.Segment{Origin: s.From, Destination: s.To, Carrier: s.Carrier}
	}

	// Without an explicit stop count, every extra physical segment is a stop.
	stops := 0
	if o.NumberOfStops != nil {
		stops = *o.NumberOfStops
	} else if len(segments) > 1 {
		stops = len(segments) - 1
	}

	duration := o.DurationMins
	if duration == 0 {
		duration = int(arrTime.Sub(depTime).Minutes())
	}

	return models.LegOffer{
		ID:              o.ID,
		Provider:        p.Name(),
		CarrierCode:     strings.ToUpper(o.Carrier.Code),
		CarrierName:     o.Carrier.Name,
		FlightNumber:    o.FlightNumber,
		Origin:          strings.ToUpper(o.Origin),
		Destination:     strings.ToUpper(o.Destination),
		DepartureTime:   depTime,
		ArrivalTime:     arrTime,
		DurationMinutes: duration,
		Stops:           stops,
		Segments:        segments,
		Fare: models.Money{
			Amount:   amount,
			Currency: strings.ToUpper(o.Price.Currency),
		},
		Baggage: models.Baggage{
			CheckedKg: parseBaggageWeight(o.Baggage),
			Info:      o.Baggage,
		},
	}, nil
}
