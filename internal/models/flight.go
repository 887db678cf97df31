package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Money is an amount tagged with the ISO currency it is expressed in.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: strings.ToUpper(currency)}
}

func (m Money) In(currency string) bool {
	return strings.EqualFold(m.Currency, currency)
}

type Segment struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Carrier     string `json:"carrier"`
}

type Baggage struct {
	CabinKg   float64 `json:"cabin_kg"`
	CheckedKg float64 `json:"checked_kg"`
	Info      string  `json:"info,omitempty"`
}

// LegQuery is the input of a single-leg fare lookup.
type LegQuery struct {
	Origin      string
	Destination string
	Date        time.Time
	Passengers  int
	CabinClass  string
	Currency    string
}

func (q LegQuery) DateString() string {
	return q.Date.Format(DateLayout)
}

// LegOffer is one priced flight option returned for a LegQuery.
type LegOffer struct {
	ID              string    `json:"id"`
	Provider        string    `json:"provider"`
	CarrierCode     string    `json:"carrier_code"`
	CarrierName     string    `json:"carrier_name,omitempty"`
	FlightNumber    string    `json:"flight_number"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Stops           int       `json:"stops"`
	Segments        []Segment `json:"segments,omitempty"`
	Fare            Money     `json:"fare"`
	Baggage         Baggage   `json:"baggage"`
}

// IsDirect reports whether the offer is a single non-stop flight. Offers
// without segment detail rely on the declared stop count alone.
func (o LegOffer) IsDirect() bool {
	return o.Stops == 0 && len(o.Segments) <= 1
}
