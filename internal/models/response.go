package models

type SearchMetadata struct {
	SearchID            string  `json:"search_id"`
	TotalResults        int     `json:"total_results"`
	Hub                 string  `json:"hub"`
	ActualDepartureDate string  `json:"actual_departure_date"`
	ActualReturnDate    *string `json:"actual_return_date,omitempty"`
	IsAlternativeDate   bool    `json:"is_alternative_date"`
	DateOffsetDays      int     `json:"date_offset_days"`
	Attempts            int     `json:"attempts"`
	Synthetic           bool    `json:"synthetic"`
	SearchTimeMs        int64   `json:"search_time_ms"`
}

type SearchCriteria struct {
	Origin        string              `json:"origin"`
	Destination   string              `json:"destination"`
	DepartureDate string              `json:"departure_date"`
	ReturnDate    *string             `json:"return_date,omitempty"`
	Passengers    int                 `json:"passengers"`
	CabinClass    string              `json:"cabin_class"`
	Rates         ExchangeRateProfile `json:"rates"`
	Filters       *SearchFilters      `json:"filters,omitempty"`
	SortBy        string              `json:"sort_by"`
	SortOrder     string              `json:"sort_order"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Message        string         `json:"message,omitempty"`
	Itineraries    []Itinerary    `json:"itineraries"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
