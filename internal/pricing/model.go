// Package pricing converts leg fares into the reference currency under the
// dual-rate policy and scores the savings it produces.
//
// A hub-departing leg on an eligible carrier is priced in two steps: its local
// face value is estimated with the carrier commercial rate, then that local
// amount is bought back at the parallel rate. Every other leg keeps its face
// value; fares already quoted in the local currency are taken at the official
// rate.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/pkg/currency"
)

// BaselineOfficialRate is the fixed local-per-reference rate used to rebuild
// the no-arbitrage baseline. It does not follow the request's official rate.
// TODO: switch to the request rate once product confirms the baseline should
// track it.
const BaselineOfficialRate = 150

const (
	DefaultReferenceCurrency = "EUR"
	DefaultLocalCurrency     = "DZD"
)

var DefaultCarrierCommercialRate = decimal.NewFromInt(170)

type Config struct {
	ReferenceCurrency string
	LocalCurrency     string
	// CarrierCommercialRate is the local-per-reference rate carriers use when
	// displaying their own local-currency fares.
	CarrierCommercialRate decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		ReferenceCurrency:     DefaultReferenceCurrency,
		LocalCurrency:         DefaultLocalCurrency,
		CarrierCommercialRate: DefaultCarrierCommercialRate,
	}
}

type Model struct {
	cfg         Config
	eligibility CarrierEligibility
}

func NewModel(cfg Config, eligibility CarrierEligibility) *Model {
	def := DefaultConfig()
	if cfg.ReferenceCurrency == "" {
		cfg.ReferenceCurrency = def.ReferenceCurrency
	}
	if cfg.LocalCurrency == "" {
		cfg.LocalCurrency = def.LocalCurrency
	}
	if !cfg.CarrierCommercialRate.IsPositive() {
		cfg.CarrierCommercialRate = def.CarrierCommercialRate
	}
	cfg.ReferenceCurrency = strings.ToUpper(cfg.ReferenceCurrency)
	cfg.LocalCurrency = strings.ToUpper(cfg.LocalCurrency)
	if eligibility == nil {
		eligibility = NewCarrierSet()
	}
	return &Model{cfg: cfg, eligibility: eligibility}
}

func (m *Model) ReferenceCurrency() string { return m.cfg.ReferenceCurrency }

func (m *Model) LocalCurrency() string { return m.cfg.LocalCurrency }

func (m *Model) IsEligible(carrierCode string) bool {
	return m.eligibility.IsEligible(carrierCode)
}

// Price converts one leg fare. Amounts are not rounded here; rounding happens
// once when an itinerary total is aggregated.
func (m *Model) Price(offer models.LegOffer, hubDeparting bool, rates models.ExchangeRateProfile) models.PricedFare {
	fare := offer.Fare
	quotedLocal := fare.In(m.cfg.LocalCurrency)

	if hubDeparting && m.eligibility.IsEligible(offer.CarrierCode) && rates.ParallelRate.IsPositive() {
		local := fare.Amount
		if !quotedLocal {
			local = fare.Amount.Mul(m.cfg.CarrierCommercialRate)
		}
		return models.PricedFare{
			Amount:      models.Money{Amount: local.Div(rates.ParallelRate), Currency: m.cfg.ReferenceCurrency},
			LocalAmount: &models.Money{Amount: local, Currency: m.cfg.LocalCurrency},
			DualRate:    true,
		}
	}

	if quotedLocal && rates.OfficialRate.IsPositive() {
		local := fare
		return models.PricedFare{
			Amount:      models.Money{Amount: fare.Amount.Div(rates.OfficialRate), Currency: m.cfg.ReferenceCurrency},
			LocalAmount: &local,
		}
	}

	// Fares in any other currency are never converted; callers drop them
	// before pricing with CanPrice.
	return models.PricedFare{
		Amount: models.Money{Amount: fare.Amount, Currency: strings.ToUpper(fare.Currency)},
	}
}

// CanPrice reports whether the offer's fare is quoted in a currency the model
// knows how to convert.
func (m *Model) CanPrice(offer models.LegOffer) bool {
	return offer.Fare.In(m.cfg.ReferenceCurrency) || offer.Fare.In(m.cfg.LocalCurrency)
}

// FaceValue is the offer's fare in the reference currency before any dual-rate
// arbitrage, with local-currency fares taken at the carrier commercial rate.
// It lets offers quoted in different currencies be compared.
func (m *Model) FaceValue(offer models.LegOffer) decimal.Decimal {
	if offer.Fare.In(m.cfg.LocalCurrency) {
		return offer.Fare.Amount.Div(m.cfg.CarrierCommercialRate)
	}
	return offer.Fare.Amount
}

func (m *Model) PriceLeg(role models.LegRole, offer models.LegOffer, rates models.ExchangeRateProfile) models.PricedLeg {
	return models.PricedLeg{
		Role:  role,
		Offer: offer,
		Price: m.Price(offer, role.DepartsHub(), rates),
	}
}

// Total sums converted leg amounts, rounded to cents once. The second value
// is the local-currency part of the fare, nil when no leg carries one.
func (m *Model) Total(legs []models.PricedLeg) (models.Money, *models.Money) {
	total := decimal.Zero
	local := decimal.Zero
	hasLocal := false

	for _, l := range legs {
		total = total.Add(l.Price.Amount.Amount)
		if l.Price.LocalAmount != nil {
			local = local.Add(l.Price.LocalAmount.Amount)
			hasLocal = true
		}
	}

	sum := models.Money{Amount: total.Round(2), Currency: m.cfg.ReferenceCurrency}
	if !hasLocal {
		return sum, nil
	}
	return sum, &models.Money{Amount: local.Round(2), Currency: m.cfg.LocalCurrency}
}

// Savings rebuilds what the legs would cost at BaselineOfficialRate and
// compares it with the actual total.
func (m *Model) Savings(legs []models.PricedLeg, total models.Money) models.Savings {
	baselineRate := decimal.NewFromInt(BaselineOfficialRate)
	baseline := decimal.Zero
	for _, l := range legs {
		if l.Price.LocalAmount != nil {
			baseline = baseline.Add(l.Price.LocalAmount.Amount.Div(baselineRate))
			continue
		}
		baseline = baseline.Add(l.Price.Amount.Amount)
	}
	baseline = baseline.Round(2)

	saved := baseline.Sub(total.Amount)
	pct := int64(0)
	if baseline.IsPositive() {
		pct = saved.Div(baseline).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	return models.Savings{
		Amount:         saved,
		Percentage:     pct,
		BaselineAmount: baseline,
	}
}

// Itinerary totals already priced legs into a finished itinerary.
func (m *Model) Itinerary(tripType models.TripType, legs []models.PricedLeg, layover models.Layover, returnLayover *models.Layover) models.Itinerary {
	total, local := m.Total(legs)
	return models.Itinerary{
		ID:                 models.ItineraryID(legs),
		TripType:           tripType,
		Legs:               legs,
		TotalFare:          total,
		TotalFormatted:     currency.Format(total.Amount, total.Currency),
		TotalLocalFare:     local,
		LayoverAtHub:       layover,
		ReturnLayoverAtHub: returnLayover,
		Savings:            m.Savings(legs, total),
	}
}
