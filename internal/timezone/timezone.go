package timezone

import (
	"strings"
	"time"
	_ "time/tzdata"
)

var airportZones = map[string]string{
	// Hub
	"ALG": "Africa/Algiers", // Algiers - Houari Boumediene
	"ORN": "Africa/Algiers", // Oran - Ahmed Ben Bella
	"CZL": "Africa/Algiers", // Constantine - Mohamed Boudiaf

	// Europe
	"CDG": "Europe/Paris", // Paris - Charles de Gaulle
	"ORY": "Europe/Paris", // Paris - Orly
	"LYS": "Europe/Paris", // Lyon - Saint-Exupery
	"MRS": "Europe/Paris", // Marseille - Provence
	"BRU": "Europe/Brussels",
	"GVA": "Europe/Zurich",
	"BCN": "Europe/Madrid",
	"FCO": "Europe/Rome",
	"LHR": "Europe/London",
	"IST": "Europe/Istanbul",

	// Middle East / Asia
	"DXB": "Asia/Dubai",
	"DOH": "Asia/Qatar",
	"JED": "Asia/Riyadh",
	"BKK": "Asia/Bangkok",
	"KUL": "Asia/Kuala_Lumpur",

	// Africa / Americas
	"CAI": "Africa/Cairo",
	"TUN": "Africa/Tunis",
	"CMN": "Africa/Casablanca",
	"YUL": "America/Toronto",
}

// LocationByAirport returns the airport's local time zone, or UTC when the
// airport is unknown.
func LocationByAirport(code string) *time.Location {
	name, ok := airportZones[strings.ToUpper(code)]
	if !ok {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func KnownAirport(code string) bool {
	_, ok := airportZones[strings.ToUpper(code)]
	return ok
}

// ParseLocal parses a wall-clock time at the given airport. Strings carrying
// an explicit offset keep it.
func ParseLocal(timeStr, airport string) (time.Time, error) {
	offsetFormats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
	}
	for _, format := range offsetFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	loc := LocationByAirport(airport)
	localFormats := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, format := range localFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

// At places a calendar date and an "HH:MM" clock time at the airport.
func At(date time.Time, clock, airport string) (time.Time, error) {
	return ParseLocal(date.Format("2006-01-02")+"T"+clock, airport)
}
