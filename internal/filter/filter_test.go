package filter_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/hubfare/internal/filter"
	"github.com/dharmasatrya/hubfare/internal/models"
)

var base = time.Date(2025, 9, 17, 6, 0, 0, 0, time.UTC)

func itinerary(id string, total float64, savingsPct int64, layover int, carriers ...string) models.Itinerary {
	legs := make([]models.PricedLeg, len(carriers))
	for i, c := range carriers {
		legs[i] = models.PricedLeg{Offer: models.LegOffer{
			CarrierCode:     c,
			DepartureTime:   base.Add(time.Duration(layover) * time.Minute),
			DurationMinutes: 120,
		}}
	}
	return models.Itinerary{
		ID:           id,
		Legs:         legs,
		TotalFare:    models.NewMoney(total, "EUR"),
		LayoverAtHub: models.Layover{DurationMinutes: layover},
		Savings:      models.Savings{Amount: decimal.NewFromInt(savingsPct), Percentage: savingsPct},
	}
}

func ids(its []models.Itinerary) []string {
	out := make([]string, 0, len(its))
	for _, it := range its {
		out = append(out, it.ID)
	}
	return out
}

func sample() []models.Itinerary {
	return []models.Itinerary{
		itinerary("A", 300, 10, 300, "AF", "AH"),
		itinerary("B", 210, 19, 285, "AH", "AH"),
		itinerary("C", 450, 0, 600, "AF", "EK"),
	}
}

func TestApply_DefaultSortIsCheapestFirst(t *testing.T) {
	assert.Equal(t, []string{"B", "A", "C"}, ids(filter.Apply(sample(), nil, "", "")))
}

func TestApply_SortOptions(t *testing.T) {
	assert.Equal(t, []string{"C", "A", "B"}, ids(filter.Apply(sample(), nil, "price", "desc")))
	assert.Equal(t, []string{"B", "A", "C"}, ids(filter.Apply(sample(), nil, "savings", "desc")))
	assert.Equal(t, []string{"B", "A", "C"}, ids(filter.Apply(sample(), nil, "layover", "asc")))
	assert.Equal(t, []string{"B", "A", "C"}, ids(filter.Apply(sample(), nil, "duration", "asc")))
	assert.Equal(t, []string{"B", "A", "C"}, ids(filter.Apply(sample(), nil, "departure", "asc")))
}

func TestApply_Filters(t *testing.T) {
	maxPrice := 310.0
	minSavings := int64(15)
	maxLayover := 290

	assert.Equal(t, []string{"B", "A"}, ids(filter.Apply(sample(), &models.SearchFilters{PriceMax: &maxPrice}, "", "")))
	assert.Equal(t, []string{"B"}, ids(filter.Apply(sample(), &models.SearchFilters{MinSavingsPercent: &minSavings}, "", "")))
	assert.Equal(t, []string{"B"}, ids(filter.Apply(sample(), &models.SearchFilters{MaxLayoverMinutes: &maxLayover}, "", "")))
	assert.Equal(t, []string{"B", "A"}, ids(filter.Apply(sample(), &models.SearchFilters{Airlines: []string{"ah", "af"}}, "", "")))
}

func TestApply_MaxStops(t *testing.T) {
	its := sample()
	its[2].Legs[1].Offer.Stops = 1
	zero := 0

	assert.Equal(t, []string{"B", "A"}, ids(filter.Apply(its, &models.SearchFilters{MaxStops: &zero}, "", "")))
}

func TestApply_EmptyInput(t *testing.T) {
	assert.Empty(t, filter.Apply(nil, &models.SearchFilters{}, "price", "asc"))
}
