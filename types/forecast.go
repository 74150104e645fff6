package types

import "time"

// Pollutants is the six-component concentration vector attached to every
// hourly forecast point, each in the provider's native unit.
type Pollutants struct {
	PM25 float64 `firestore:"pm25" json:"pm25"`
	PM10 float64 `firestore:"pm10" json:"pm10"`
	CO   float64 `firestore:"co" json:"co"`
	NO2  float64 `firestore:"no2" json:"no2"`
	SO2  float64 `firestore:"so2" json:"so2"`
	O3   float64 `firestore:"o3" json:"o3"`
}

// HourlyPoint is one hour of an aligned forecast window.
type HourlyPoint struct {
	Timestamp  time.Time
	AQI        int
	Pollutants Pollutants
	Valid      bool // false when the provider returned null for this hour
}

// ForecastSeries is one forecast fetch for one location, aligned so that
// index 0 is the current hour. It is transient: built per user per run and
// never persisted.
type ForecastSeries struct {
	Location string
	Lat      float64
	Long     float64
	Hours    []HourlyPoint
}
