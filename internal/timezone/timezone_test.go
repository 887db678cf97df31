package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/hubfare/internal/timezone"
)

func TestLocationByAirport(t *testing.T) {
	assert.Equal(t, "Africa/Algiers", timezone.LocationByAirport("alg").String())
	assert.Equal(t, time.UTC, timezone.LocationByAirport("ZZZ"))
	assert.True(t, timezone.KnownAirport("DXB"))
	assert.False(t, timezone.KnownAirport("ZZZ"))
}

func TestParseLocal(t *testing.T) {
	local, err := timezone.ParseLocal("2025-09-17T08:10", "CDG")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-17T06:10:00Z", local.UTC().Format(time.RFC3339))

	explicit, err := timezone.ParseLocal("2025-09-17T08:10:00+04:00", "CDG")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-17T04:10:00Z", explicit.UTC().Format(time.RFC3339))

	_, err = timezone.ParseLocal("tomorrow", "CDG")
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	date := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	got, err := timezone.At(date, "14:00", "ALG")

	require.NoError(t, err)
	assert.Equal(t, "2025-09-17T13:00:00Z", got.UTC().Format(time.RFC3339))
}
