package filter

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/models"
)

// Apply narrows and orders itineraries for presentation. It never adds or
// alters an itinerary.
func Apply(itineraries []models.Itinerary, filters *models.SearchFilters, sortBy, sortOrder string) []models.Itinerary {
	filtered := applyFilters(itineraries, filters)
	return applySort(filtered, sortBy, sortOrder)
}

func applyFilters(itineraries []models.Itinerary, filters *models.SearchFilters) []models.Itinerary {
	result := make([]models.Itinerary, 0, len(itineraries))
	for _, it := range itineraries {
		if filters == nil || matchesFilters(it, filters) {
			result = append(result, it)
		}
	}
	return result
}

func matchesFilters(it models.Itinerary, filters *models.SearchFilters) bool {
	if filters.PriceMax != nil && it.TotalFare.Amount.GreaterThan(decimal.NewFromFloat(*filters.PriceMax)) {
		return false
	}

	if filters.MaxStops != nil && it.TotalStops() > *filters.MaxStops {
		return false
	}

	if len(filters.Airlines) > 0 {
		for _, leg := range it.Legs {
			if !containsFold(filters.Airlines, leg.Offer.CarrierCode) {
				return false
			}
		}
	}

	if filters.MinSavingsPercent != nil && it.Savings.Percentage < *filters.MinSavingsPercent {
		return false
	}

	if filters.MaxLayoverMinutes != nil {
		if it.LayoverAtHub.DurationMinutes > *filters.MaxLayoverMinutes {
			return false
		}
		if it.ReturnLayoverAtHub != nil && it.ReturnLayoverAtHub.DurationMinutes > *filters.MaxLayoverMinutes {
			return false
		}
	}

	return true
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func applySort(itineraries []models.Itinerary, sortBy, sortOrder string) []models.Itinerary {
	if len(itineraries) < 2 {
		return itineraries
	}

	desc := strings.ToLower(sortOrder) == "desc"
	var less func(a, b models.Itinerary) bool

	switch strings.ToLower(sortBy) {
	case "savings":
		less = func(a, b models.Itinerary) bool { return a.Savings.Amount.LessThan(b.Savings.Amount) }
	case "duration":
		less = func(a, b models.Itinerary) bool { return a.TotalDurationMinutes() < b.TotalDurationMinutes() }
	case "layover":
		less = func(a, b models.Itinerary) bool { return a.LayoverAtHub.DurationMinutes < b.LayoverAtHub.DurationMinutes }
	case "departure":
		less = func(a, b models.Itinerary) bool { return a.Legs[0].Offer.DepartureTime.Before(b.Legs[0].Offer.DepartureTime) }
	default:
		less = func(a, b models.Itinerary) bool { return a.TotalFare.Amount.LessThan(b.TotalFare.Amount) }
	}

	sort.SliceStable(itineraries, func(i, j int) bool {
		if desc {
			return less(itineraries[j], itineraries[i])
		}
		return less(itineraries[i], itineraries[j])
	})
	return itineraries
}
