package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dharmasatrya/hubfare/internal/filter"
	"github.com/dharmasatrya/hubfare/internal/models"
	"github.com/dharmasatrya/hubfare/internal/pricing"
	"github.com/dharmasatrya/hubfare/internal/providers"
	"github.com/dharmasatrya/hubfare/internal/search"
)

// Searcher is the part of search.Engine the handler depends on.
type Searcher interface {
	Hub() string
	SearchOneWay(ctx context.Context, p models.SearchParams) ([]models.Itinerary, error)
	SearchRoundTrip(ctx context.Context, p models.SearchParams) ([]models.Itinerary, error)
	SearchWithDateFallback(ctx context.Context, p models.SearchParams) (*search.FallbackResult, error)
}

type SearchHandler struct {
	engine Searcher
	rates  *pricing.RateBook
	logger *slog.Logger
}

func NewSearchHandler(engine Searcher, rates *pricing.RateBook, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{engine: engine, rates: rates, logger: logger}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	// Rates are read once here; a concurrent PUT /rates only affects later searches.
	params := req.Params(h.rates.Current())
	params.SearchID = c.Response().Header().Get(echo.HeaderXRequestID)
	if params.SearchID == "" {
		params.SearchID = uuid.NewString()
	}

	result, err := h.run(ctx, req, params)
	if err != nil {
		return h.searchError(c, err)
	}

	itineraries := filter.Apply(result.Itineraries, req.Filters, req.SortBy, req.SortOrder)

	meta := models.SearchMetadata{
		SearchID:            params.SearchID,
		TotalResults:        len(itineraries),
		Hub:                 h.engine.Hub(),
		ActualDepartureDate: result.ActualDepartDate.Format(models.DateLayout),
		IsAlternativeDate:   result.IsAlternativeDate,
		DateOffsetDays:      result.OffsetDays,
		Attempts:            result.Attempts,
		Synthetic:           result.Synthetic,
		SearchTimeMs:        time.Since(startTime).Milliseconds(),
	}
	if result.ActualReturnDate != nil {
		ret := result.ActualReturnDate.Format(models.DateLayout)
		meta.ActualReturnDate = &ret
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: buildSearchCriteria(req, params),
		Metadata:       meta,
		Message:        result.Message,
		Itineraries:    itineraries,
	})
}

func (h *SearchHandler) run(ctx context.Context, req models.SearchRequest, params models.SearchParams) (*search.FallbackResult, error) {
	if req.FallbackEnabled() {
		return h.engine.SearchWithDateFallback(ctx, params)
	}

	var (
		itineraries []models.Itinerary
		err         error
	)
	if params.IsRoundTrip() {
		itineraries, err = h.engine.SearchRoundTrip(ctx, params)
	} else {
		itineraries, err = h.engine.SearchOneWay(ctx, params)
	}
	if err != nil {
		return nil, err
	}

	result := &search.FallbackResult{
		Itineraries:      itineraries,
		ActualDepartDate: params.DepartureDate,
		ActualReturnDate: params.ReturnDate,
		Attempts:         1,
	}
	if len(itineraries) == 0 {
		result.Message = "No itinerary via " + h.engine.Hub() + " found for the requested dates."
	}
	return result, nil
}

func (h *SearchHandler) searchError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	code := "search_error"

	switch {
	case errors.Is(err, providers.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
		code = "provider_unavailable"
	case errors.Is(err, models.ErrInvalidRates):
		status = http.StatusBadRequest
		code = "validation_error"
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		code = "search_timeout"
	}

	h.logger.Error("search failed", slog.String("error_code", code), slog.Any("error", err))
	return c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: "Failed to search itineraries: " + err.Error(),
		Code:    status,
	})
}

func (h *SearchHandler) GetRates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.rates.Current())
}

func (h *SearchHandler) UpdateRates(c echo.Context) error {
	var in models.RatesInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	profile := models.ExchangeRateProfile{
		ParallelRate: decimal.NewFromFloat(in.ParallelRate),
		OfficialRate: decimal.NewFromFloat(in.OfficialRate),
	}
	if err := h.rates.Set(profile); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	h.logger.Info("default exchange rates updated",
		slog.String("parallel_rate", profile.ParallelRate.String()),
		slog.String("official_rate", profile.OfficialRate.String()),
	)
	return c.JSON(http.StatusOK, profile)
}

func buildSearchCriteria(req models.SearchRequest, params models.SearchParams) models.SearchCriteria {
	return models.SearchCriteria{
		Origin:        params.Origin,
		Destination:   params.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    params.Passengers,
		CabinClass:    params.CabinClass,
		Rates:         params.Rates,
		Filters:       req.Filters,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
