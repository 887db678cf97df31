package ranking_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/pricing"
	"github.com/dharmasatrya/hubfare/internal/ranking"
)

func offer(flight, carrier string, stops int, fare float64) models.LegOffer {
	return models.LegOffer{
		FlightNumber: flight,
		CarrierCode:  carrier,
		Stops:        stops,
		Fare:         models.NewMoney(fare, "EUR"),
	}
}

func TestRank_StopsThenEligibilityThenFare(t *testing.T) {
	r := ranking.NewRanker(pricing.NewCarrierSet("AH"))
	offers := []models.LegOffer{
		offer("TK654", "TK", 1, 80),
		offer("EK758", "EK", 0, 120),
		offer("AH4062", "AH", 0, 300),
		offer("EK760", "EK", 0, 90),
		offer("AH4064", "AH", 0, 250),
	}

	got := r.Rank(offers)

	var order []string
	for _, o := range got {
		order = append(order, o.FlightNumber)
	}
	assert.Equal(t, []string{"AH4064", "AH4062", "EK760", "EK758", "TK654"}, order)
	assert.Equal(t, "TK654", offers[0].FlightNumber, "input must not be reordered")
}

func TestRank_IsStableForEqualOffers(t *testing.T) {
	r := ranking.NewRanker(pricing.NewCarrierSet("AH"))
	offers := []models.LegOffer{
		offer("A", "EK", 0, 100),
		offer("B", "EK", 0, 100),
		offer("C", "EK", 0, 100),
	}

	got := r.Rank(offers)

	assert.Equal(t, offers, got)
}

func TestRank_NilEligibility(t *testing.T) {
	r := ranking.NewRanker(nil)

	got := r.Rank([]models.LegOffer{offer("A", "AH", 0, 200), offer("B", "EK", 0, 100)})

	assert.Equal(t, "B", got[0].FlightNumber)
}

func TestBetterPair(t *testing.T) {
	r := ranking.NewRanker(pricing.NewCarrierSet("AH"))
	direct := r.NewPair(offer("R1", "EK", 0, 0), offer("R2", "AH", 0, 0), decimal.NewFromInt(300))
	bothEligible := r.NewPair(offer("R3", "AH", 0, 0), offer("R4", "AH", 0, 0), decimal.NewFromInt(500))
	connecting := r.NewPair(offer("R5", "AH", 1, 0), offer("R6", "AH", 0, 0), decimal.NewFromInt(100))
	cheaper := r.NewPair(offer("R7", "EK", 0, 0), offer("R8", "AH", 0, 0), decimal.NewFromInt(250))

	assert.Equal(t, 1, direct.EligibleCount)
	assert.Equal(t, 2, bothEligible.EligibleCount)
	assert.Equal(t, 1, connecting.Stops)

	assert.True(t, ranking.BetterPair(direct, connecting))
	assert.True(t, ranking.BetterPair(bothEligible, direct))
	assert.True(t, ranking.BetterPair(cheaper, direct))
	assert.False(t, ranking.BetterPair(direct, direct))
}

func TestRank_ComparesFaceValueAcrossCurrencies(t *testing.T) {
	eligibility := pricing.NewCarrierSet("AH")
	r := ranking.NewRanker(eligibility).WithFaceValue(pricing.NewModel(pricing.DefaultConfig(), eligibility))
	local := offer("TK655", "TK", 0, 7800)
	local.Fare = models.NewMoney(7800, "DZD")

	got := r.Rank([]models.LegOffer{offer("EK759", "EK", 0, 60), local})

	assert.Equal(t, "TK655", got[0].FlightNumber)
	assert.Equal(t, "EK759", got[1].FlightNumber)
}
