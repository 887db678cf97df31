package providers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/hubfare/internal/providers"
)

const offersBody = `{
  "data": [
    {
      "id": "off_1",
      "carrier": {"code": "ah", "name": "Air Algerie"},
      "flight_number": "AH4062",
      "origin": "ALG",
      "destination": "DXB",
      "departure_at": "2025-09-17T14:00:00",
      "arrival_at": "2025-09-17T22:35:00",
      "price": {"total": "100.00", "currency": "eur"},
      "baggage": "2x23 kg"
    },
    {
      "id": "off_2",
      "carrier": {"code": "TK", "name": "Turkish Airlines"},
      "flight_number": "TK654",
      "origin": "ALG",
      "destination": "DXB",
      "departure_at": "2025-09-17T11:05:00+01:00",
      "arrival_at": "2025-09-17T23:55:00+04:00",
      "duration_minutes": 710,
      "segments": [
        {"from": "ALG", "to": "IST", "carrier": "TK"},
        {"from": "IST", "to": "DXB", "carrier": "TK"}
      ],
      "price": {"total": "268", "currency": "EUR"}
    },
    {
      "id": "off_3",
      "carrier": {"code": "XX"},
      "flight_number": "XX1",
      "origin": "ALG",
      "destination": "DXB",
      "departure_at": "not a time",
      "arrival_at": "2025-09-17T23:55:00",
      "price": {"total": "1", "currency": "EUR"}
    }
  ]
}`

func TestHTTPProvider_MapsOffers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/offers", r.URL.Path)
		assert.Equal(t, "ALG", r.URL.Query().Get("origin"))
		assert.Equal(t, "DXB", r.URL.Query().Get("destination"))
		assert.Equal(t, "2025-09-17", r.URL.Query().Get("date"))
		assert.Equal(t, "1", r.URL.Query().Get("adults"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(offersBody))
	}))
	defer srv.Close()

	p := providers.NewHTTPProvider(providers.HTTPConfig{BaseURL: srv.URL + "/", APIKey: "secret"})
	got, err := p.SearchLegOffers(context.Background(), query("ALG", "DXB", "2025-09-17"))

	require.NoError(t, err)
	require.Len(t, got, 2)

	ah := got[0]
	assert.Equal(t, "fareapi", ah.Provider)
	assert.Equal(t, "AH", ah.CarrierCode)
	assert.Equal(t, "EUR", ah.Fare.Currency)
	assert.Equal(t, "100", ah.Fare.Amount.String())
	assert.Equal(t, 335, ah.DurationMinutes)
	assert.True(t, ah.IsDirect())
	assert.Equal(t, float64(46), ah.Baggage.CheckedKg)

	tk := got[1]
	assert.Equal(t, 1, tk.Stops)
	assert.Equal(t, 710, tk.DurationMinutes)
	assert.False(t, tk.IsDirect())
}

func TestHTTPProvider_StatusMapping(t *testing.T) {
	tests := []struct {
		status      int
		unavailable bool
		rateLimited bool
	}{
		{http.StatusTooManyRequests, false, true},
		{http.StatusUnauthorized, true, false},
		{http.StatusForbidden, true, false},
		{http.StatusBadGateway, false, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := providers.NewHTTPProvider(providers.HTTPConfig{BaseURL: srv.URL})
			_, err := p.SearchLegOffers(context.Background(), query("ALG", "DXB", "2025-09-17"))

			require.Error(t, err)
			assert.Equal(t, tt.unavailable, errors.Is(err, providers.ErrProviderUnavailable))
			assert.Equal(t, tt.rateLimited, errors.Is(err, providers.ErrRateLimited))
		})
	}
}

func TestHTTPProvider_UnconfiguredIsUnavailable(t *testing.T) {
	p := providers.NewHTTPProvider(providers.HTTPConfig{})

	_, err := p.SearchLegOffers(context.Background(), query("ALG", "DXB", "2025-09-17"))

	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestHTTPProvider_UnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := providers.NewHTTPProvider(providers.HTTPConfig{BaseURL: url})
	_, err := p.SearchLegOffers(context.Background(), query("ALG", "DXB", "2025-09-17"))

	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestHTTPProvider_DroppedConnectionIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if assert.NoError(t, err) {
			_ = conn.Close()
		}
	}))
	defer srv.Close()

	p := providers.NewHTTPProvider(providers.HTTPConfig{BaseURL: srv.URL})
	_, err := p.SearchLegOffers(context.Background(), query("ALG", "DXB", "2025-09-17"))

	var providerErr *providers.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.NotErrorIs(t, err, providers.ErrProviderUnavailable)
}
