package synthetic_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/hubfare/internal/combiner"
	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/pricing"
	"github.com/dharmasatrya/hubfare/internal/ranking"
	"github.com/dharmasatrya/hubfare/internal/synthetic"
)

func newGenerator() *synthetic.Generator {
	eligibility := pricing.NewCarrierSet("AH")
	pricer := pricing.NewModel(pricing.DefaultConfig(), eligibility)
	comb := combiner.New(combiner.RelaxedConfig(), pricer, ranking.NewRanker(eligibility), "ALG")
	return synthetic.NewGenerator(synthetic.DefaultConfig(), comb)
}

func params() models.SearchParams {
	return models.SearchParams{
		Origin:        "CDG",
		Destination:   "DXB",
		DepartureDate: time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC),
		Passengers:    1,
		Rates: models.ExchangeRateProfile{
			ParallelRate: decimal.NewFromInt(260),
			OfficialRate: decimal.NewFromInt(150),
		},
	}
}

func TestGenerate_FlagsEveryItinerary(t *testing.T) {
	route := models.NewRoute("CDG", "ALG", "DXB")

	got := newGenerator().Generate(route, params())

	require.NotEmpty(t, got)
	for _, it := range got {
		assert.True(t, it.Synthetic)
		assert.Equal(t, models.OneWay, it.TripType)
		require.Len(t, it.Legs, 2)
		assert.Equal(t, "synthetic", it.Legs[0].Offer.Provider)
		assert.Equal(t, "CDG", it.Legs[0].Offer.Origin)
		assert.Equal(t, "ALG", it.Legs[0].Offer.Destination)
		assert.Equal(t, "DXB", it.Legs[1].Offer.Destination)
		assert.GreaterOrEqual(t, it.LayoverAtHub.DurationMinutes, 60)
		assert.Contains(t, it.ID, "SYN-")
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	route := models.NewRoute("CDG", "ALG", "DXB")
	g := newGenerator()

	first := g.Generate(route, params())
	second := g.Generate(route, params())

	assert.Equal(t, first, second)
}

func TestGenerate_RoundTrip(t *testing.T) {
	route := models.NewRoute("CDG", "ALG", "DXB")
	p := params()
	ret := p.DepartureDate.AddDate(0, 0, 7)
	p.ReturnDate = &ret

	got := newGenerator().Generate(route, p)

	require.NotEmpty(t, got)
	for _, it := range got {
		assert.True(t, it.Synthetic)
		assert.Equal(t, models.RoundTrip, it.TripType)
		require.Len(t, it.Legs, 4)
		assert.Equal(t, "2025-09-24", it.Legs[2].Offer.DepartureTime.Format(models.DateLayout))
	}
}
