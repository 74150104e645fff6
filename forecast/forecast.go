package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-airwatch/types"
)

const (
	hourlyFields = "us_aqi,pm2_5,pm10,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone"
	timeLayout   = "2006-01-02T15:04" // provider uses local naive timestamps
	windowHours  = 24
)

var (
	// ErrForecastUnavailable means the provider response lacks an hourly AQI array.
	ErrForecastUnavailable = errors.New("forecast: no hourly AQI data in response")
	// ErrAlignmentFailure means no hour in the provider's time array matches
	// the current local hour, so the 24h window cannot be anchored.
	ErrAlignmentFailure = errors.New("forecast: could not align series to current hour")
	// ErrUpstream wraps transport-level failures talking to the provider.
	ErrUpstream = errors.New("forecast: upstream error")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// providerResponse matches the open-meteo air quality payload shape. Hourly
// values are pointers because the provider returns null for hours it cannot
// model.
type providerResponse struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`
	Hourly           struct {
		Time []string   `json:"time"`
		AQI  []*float64 `json:"us_aqi"`
		PM25 []*float64 `json:"pm2_5"`
		PM10 []*float64 `json:"pm10"`
		CO   []*float64 `json:"carbon_monoxide"`
		NO2  []*float64 `json:"nitrogen_dioxide"`
		SO2  []*float64 `json:"sulphur_dioxide"`
		O3   []*float64 `json:"ozone"`
	} `json:"hourly"`
}

// Fetch requests the hourly AQI and pollutant series for a coordinate and
// returns a 24-entry window aligned so index 0 is the current hour at the
// location. Pure fetch, nothing is cached.
func (c *Client) Fetch(lat, long float64) (types.ForecastSeries, error) {
	var series types.ForecastSeries

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", long))
	query.Set("hourly", hourlyFields)
	query.Set("timezone", "auto")

	resp, err := c.httpClient.Get(c.baseURL + "?" + query.Encode())
	if err != nil {
		return series, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return series, fmt.Errorf("%w: provider returned status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return series, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var payload providerResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return series, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(payload.Hourly.AQI) == 0 || len(payload.Hourly.Time) == 0 {
		return series, ErrForecastUnavailable
	}

	return c.align(payload, lat, long)
}

// align anchors the provider's hourly arrays to "now": it finds the index
// whose hour-of-day equals the current local hour at the location, then takes
// 24 entries from there, wrapping modulo the array length.
func (c *Client) align(payload providerResponse, lat, long float64) (types.ForecastSeries, error) {
	series := types.ForecastSeries{Lat: lat, Long: long}
	zone := time.FixedZone("provider", payload.UTCOffsetSeconds)
	localHour := c.now().In(zone).Hour()

	length := len(payload.Hourly.Time)
	start := -1
	for i, raw := range payload.Hourly.Time {
		ts, err := time.ParseInLocation(timeLayout, raw, zone)
		if err != nil {
			continue
		}
		if ts.Hour() == localHour {
			start = i
			break
		}
	}
	if start == -1 {
		return series, ErrAlignmentFailure
	}

	for offset := 0; offset < windowHours; offset++ {
		i := (start + offset) % length
		ts, err := time.ParseInLocation(timeLayout, payload.Hourly.Time[i], zone)
		if err != nil {
			continue
		}

		point := types.HourlyPoint{Timestamp: ts}
		if i < len(payload.Hourly.AQI) && payload.Hourly.AQI[i] != nil {
			point.Valid = true
			point.AQI = int(*payload.Hourly.AQI[i])
			point.Pollutants = types.Pollutants{
				PM25: valueAt(payload.Hourly.PM25, i),
				PM10: valueAt(payload.Hourly.PM10, i),
				CO:   valueAt(payload.Hourly.CO, i),
				NO2:  valueAt(payload.Hourly.NO2, i),
				SO2:  valueAt(payload.Hourly.SO2, i),
				O3:   valueAt(payload.Hourly.O3, i),
			}
		}
		series.Hours = append(series.Hours, point)
	}

	return series, nil
}

func valueAt(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
