package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TripType string

const (
	OneWay    TripType = "one_way"
	RoundTrip TripType = "round_trip"
)

// ExchangeRateProfile holds local-currency units per one reference-currency unit.
type ExchangeRateProfile struct {
	ParallelRate decimal.Decimal `json:"parallel_rate"`
	OfficialRate decimal.Decimal `json:"official_rate"`
}

var ErrInvalidRates = errors.New("exchange rates must be positive")

func (p ExchangeRateProfile) Validate() error {
	if !p.ParallelRate.IsPositive() || !p.OfficialRate.IsPositive() {
		return ErrInvalidRates
	}
	return nil
}

// PricedFare is a leg fare after currency conversion. LocalAmount is set for
// fares that were expressed, or estimated, in the hub's local currency.
type PricedFare struct {
	Amount      Money  `json:"amount"`
	LocalAmount *Money `json:"local_amount,omitempty"`
	DualRate    bool   `json:"dual_rate"`
}

type PricedLeg struct {
	Role  LegRole    `json:"role"`
	Offer LegOffer   `json:"offer"`
	Price PricedFare `json:"price"`
}

type Layover struct {
	DurationMinutes int    `json:"duration_minutes"`
	Duration        string `json:"duration"`
	Location        string `json:"location"`
}

func NewLayover(d time.Duration, location string) Layover {
	mins := int(d.Minutes())
	return Layover{
		DurationMinutes: mins,
		Duration:        FormatDuration(mins),
		Location:        location,
	}
}

// FormatDuration renders minutes as "4h 45m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Savings compares the itinerary total against a fixed official-rate baseline.
// The baseline is a reconstruction, not a live market quote.
type Savings struct {
	Amount         decimal.Decimal `json:"amount"`
	Percentage     int64           `json:"percentage"`
	BaselineAmount decimal.Decimal `json:"baseline_amount"`
}

type Itinerary struct {
	ID                 string      `json:"id"`
	TripType           TripType    `json:"trip_type"`
	Legs               []PricedLeg `json:"legs"`
	TotalFare          Money       `json:"total_fare"`
	TotalFormatted     string      `json:"total_formatted"`
	TotalLocalFare     *Money      `json:"total_local_fare,omitempty"`
	LayoverAtHub       Layover     `json:"layover_at_hub"`
	ReturnLayoverAtHub *Layover    `json:"return_layover_at_hub,omitempty"`
	Savings            Savings     `json:"savings"`
	Synthetic          bool        `json:"synthetic"`
}

// ItineraryID derives an itinerary identity from its flight numbers.
func ItineraryID(legs []PricedLeg) string {
	parts := make([]string, len(legs))
	for i, l := range legs {
		parts[i] = l.Offer.FlightNumber
	}
	return strings.Join(parts, "-")
}

func (it Itinerary) TotalStops() int {
	stops := 0
	for _, l := range it.Legs {
		stops += l.Offer.Stops
	}
	return stops
}

func (it Itinerary) TotalDurationMinutes() int {
	if len(it.Legs) == 0 {
		return 0
	}
	total := 0
	for _, l := range it.Legs {
		total += l.Offer.DurationMinutes
	}
	total += it.LayoverAtHub.DurationMinutes
	if it.ReturnLayoverAtHub != nil {
		total += it.ReturnLayoverAtHub.DurationMinutes
	}
	return total
}
