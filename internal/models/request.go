package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SearchFilters struct {
	PriceMax          *float64 `json:"price_max,omitempty" validate:"omitempty,gt=0"`
	MaxStops          *int     `json:"max_stops,omitempty" validate:"omitempty,min=0"`
	Airlines          []string `json:"airlines,omitempty" validate:"omitempty,dive,alphanum,len=2"`
	MinSavingsPercent *int64   `json:"min_savings_percent,omitempty" validate:"omitempty,min=0,max=100"`
	MaxLayoverMinutes *int     `json:"max_layover_minutes,omitempty" validate:"omitempty,min=0"`
}

type RatesInput struct {
	ParallelRate float64 `json:"parallel_rate"`
	OfficialRate float64 `json:"official_rate"`
}

// SearchRequest is the wire shape of an itinerary search.
type SearchRequest struct {
	Origin           string         `json:"origin" validate:"alpha,len=3"`
	Destination      string         `json:"destination" validate:"alpha,len=3"`
	DepartureDate    string         `json:"departure_date"`
	ReturnDate       *string        `json:"return_date,omitempty"`
	Passengers       int            `json:"passengers" validate:"min=1,max=9"`
	CabinClass       string         `json:"cabin_class" validate:"oneof=economy premium_economy business first"`
	Rates            *RatesInput    `json:"rates,omitempty"`
	DateFallback     *bool          `json:"date_fallback,omitempty"`
	IncludeSynthetic bool           `json:"include_synthetic,omitempty"`
	Filters          *SearchFilters `json:"filters,omitempty"`
	SortBy           string         `json:"sort_by,omitempty" validate:"oneof=price savings duration layover departure"`
	SortOrder        string         `json:"sort_order,omitempty" validate:"oneof=asc desc"`
}

func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if strings.EqualFold(r.Origin, r.Destination) {
		return ErrSameOriginDestination
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if _, err := time.Parse(DateLayout, r.DepartureDate); err != nil {
		return ErrInvalidDate
	}
	if r.ReturnDate != nil && *r.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, *r.ReturnDate)
		if err != nil {
			return ErrInvalidDate
		}
		dep, _ := time.Parse(DateLayout, r.DepartureDate)
		if ret.Before(dep) {
			return ErrReturnBeforeDeparture
		}
	}
	if r.Rates != nil && (r.Rates.ParallelRate <= 0 || r.Rates.OfficialRate <= 0) {
		return ErrInvalidRateInput
	}
	if r.Passengers <= 0 {
		r.Passengers = 1
	}
	r.CabinClass = strings.ToLower(r.CabinClass)
	if r.CabinClass == "" {
		r.CabinClass = "economy"
	}
	r.SortBy = strings.ToLower(r.SortBy)
	if r.SortBy == "" {
		r.SortBy = "price"
	}
	r.SortOrder = strings.ToLower(r.SortOrder)
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

func (r SearchRequest) IsRoundTrip() bool {
	return r.ReturnDate != nil && *r.ReturnDate != ""
}

func (r SearchRequest) FallbackEnabled() bool {
	return r.DateFallback == nil || *r.DateFallback
}

// Params converts a validated request into engine parameters. The given
// rates are used unless the request carries its own.
func (r SearchRequest) Params(defaults ExchangeRateProfile) SearchParams {
	dep, _ := time.Parse(DateLayout, r.DepartureDate)
	p := SearchParams{
		Origin:           strings.ToUpper(r.Origin),
		Destination:      strings.ToUpper(r.Destination),
		DepartureDate:    dep,
		Passengers:       r.Passengers,
		CabinClass:       strings.ToLower(r.CabinClass),
		Rates:            defaults,
		IncludeSynthetic: r.IncludeSynthetic,
	}
	if r.IsRoundTrip() {
		ret, _ := time.Parse(DateLayout, *r.ReturnDate)
		p.ReturnDate = &ret
	}
	if r.Rates != nil {
		p.Rates = ExchangeRateProfile{
			ParallelRate: decimal.NewFromFloat(r.Rates.ParallelRate),
			OfficialRate: decimal.NewFromFloat(r.Rates.OfficialRate),
		}
	}
	return p
}

// SearchParams is the engine-facing form of a search.
type SearchParams struct {
	Origin           string
	Destination      string
	DepartureDate    time.Time
	ReturnDate       *time.Time
	Passengers       int
	CabinClass       string
	Rates            ExchangeRateProfile
	IncludeSynthetic bool
	// SearchID tags engine logs so they correlate with the response metadata.
	SearchID string
}

func (p SearchParams) IsRoundTrip() bool {
	return p.ReturnDate != nil
}

// Shift moves the departure date, and the return date if any, by the same
// number of days.
func (p SearchParams) Shift(days int) SearchParams {
	shifted := p
	shifted.DepartureDate = p.DepartureDate.AddDate(0, 0, days)
	if p.ReturnDate != nil {
		ret := p.ReturnDate.AddDate(0, 0, days)
		shifted.ReturnDate = &ret
	}
	return shifted
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "origin is required"
	ErrMissingDestination    ValidationError = "destination is required"
	ErrSameOriginDestination ValidationError = "origin and destination must differ"
	ErrMissingDepartureDate  ValidationError = "departure_date is required"
	ErrInvalidDate           ValidationError = "dates must use YYYY-MM-DD"
	ErrReturnBeforeDeparture ValidationError = "return_date must not be before departure_date"
	ErrInvalidRateInput      ValidationError = "rates must be positive"
)
