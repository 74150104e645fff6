package forecast

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDay builds a provider payload with one entry per hour of a single day.
func fakeDay(aqi func(hour int) *float64) map[string]any {
	var times []string
	var aqis []*float64
	var pm25 []*float64
	for h := 0; h < 24; h++ {
		times = append(times, fmt.Sprintf("2025-06-01T%02d:00", h))
		aqis = append(aqis, aqi(h))
		v := float64(h)
		pm25 = append(pm25, &v)
	}
	return map[string]any{
		"utc_offset_seconds": 0,
		"hourly": map[string]any{
			"time":   times,
			"us_aqi": aqis,
			"pm2_5":  pm25,
		},
	}
}

func serveJSON(t *testing.T, payload any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
}

func clientAt(server *httptest.Server, hour int) *Client {
	c := NewClient(server.URL)
	c.now = func() time.Time {
		return time.Date(2025, 6, 1, hour, 30, 0, 0, time.UTC)
	}
	return c
}

func TestFetchAlignsToCurrentHour(t *testing.T) {
	fifty := 50.0
	server := serveJSON(t, fakeDay(func(int) *float64 { return &fifty }))
	defer server.Close()

	series, err := clientAt(server, 10).Fetch(40.0, -90.0)
	require.NoError(t, err)

	require.Len(t, series.Hours, 24)
	assert.Equal(t, 10, series.Hours[0].Timestamp.Hour())
	assert.Equal(t, 11, series.Hours[1].Timestamp.Hour())
	// Window wraps modulo the provider's day length.
	assert.Equal(t, 0, series.Hours[14].Timestamp.Hour())
	assert.Equal(t, 9, series.Hours[23].Timestamp.Hour())
	assert.Equal(t, 50, series.Hours[0].AQI)
	assert.InDelta(t, 10.0, series.Hours[0].Pollutants.PM25, 0.001)
}

func TestFetchNullHoursAreInvalid(t *testing.T) {
	value := 120.0
	server := serveJSON(t, fakeDay(func(hour int) *float64 {
		if hour == 12 {
			return nil
		}
		return &value
	}))
	defer server.Close()

	series, err := clientAt(server, 10).Fetch(40.0, -90.0)
	require.NoError(t, err)

	// Hour 12 sits at window offset 2.
	assert.False(t, series.Hours[2].Valid)
	assert.True(t, series.Hours[3].Valid)
}

func TestFetchForecastUnavailable(t *testing.T) {
	server := serveJSON(t, map[string]any{
		"utc_offset_seconds": 0,
		"hourly": map[string]any{
			"time": []string{"2025-06-01T00:00"},
		},
	})
	defer server.Close()

	_, err := clientAt(server, 10).Fetch(40.0, -90.0)
	assert.ErrorIs(t, err, ErrForecastUnavailable)
}

func TestFetchAlignmentFailure(t *testing.T) {
	value := 80.0
	payload := map[string]any{
		"utc_offset_seconds": 0,
		"hourly": map[string]any{
			"time":   []string{"2025-06-01T00:00", "2025-06-01T01:00"},
			"us_aqi": []*float64{&value, &value},
		},
	}
	server := serveJSON(t, payload)
	defer server.Close()

	_, err := clientAt(server, 10).Fetch(40.0, -90.0)
	assert.ErrorIs(t, err, ErrAlignmentFailure)
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Fetch(40.0, -90.0)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestFetchRespectsProviderTimezone(t *testing.T) {
	payload := fakeDay(func(int) *float64 { v := 60.0; return &v })
	payload["utc_offset_seconds"] = -5 * 3600
	server := serveJSON(t, payload)
	defer server.Close()

	// 15:30 UTC is 10:30 at UTC-5, so the window anchors at hour 10.
	series, err := clientAt(server, 15).Fetch(40.0, -90.0)
	require.NoError(t, err)
	assert.Equal(t, 10, series.Hours[0].Timestamp.Hour())
}
