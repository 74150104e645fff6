package aqi

import "go-airwatch/types"

// DefaultThreshold is the AQI value above which a forecast hour is
// alert-worthy: the top of the Moderate band used across the app.
const DefaultThreshold = 94

// Category maps an AQI value to its EPA descriptor using the fixed inclusive
// bands. Anything outside 0-500 is "Unknown".
func Category(aqi int) string {
	switch {
	case aqi >= 0 && aqi <= 50:
		return "Good"
	case aqi >= 51 && aqi <= 100:
		return "Moderate"
	case aqi >= 101 && aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi >= 151 && aqi <= 200:
		return "Unhealthy"
	case aqi >= 201 && aqi <= 300:
		return "Very Unhealthy"
	case aqi >= 301 && aqi <= 500:
		return "Hazardous"
	default:
		return "Unknown"
	}
}

// FlaggedHour is a forecast hour whose AQI strictly exceeds the threshold.
type FlaggedHour struct {
	Point    types.HourlyPoint
	Category string
}

// Evaluate scans the series in order and returns every valid hour strictly
// above threshold. Invalid (null) hours are skipped, never fabricated;
// adjacent flagged hours are not merged. The function is pure: same series
// and threshold always produce the same sequence.
func Evaluate(series types.ForecastSeries, threshold int) []FlaggedHour {
	var flagged []FlaggedHour
	for _, point := range series.Hours {
		if !point.Valid {
			continue
		}
		if point.AQI > threshold {
			flagged = append(flagged, FlaggedHour{
				Point:    point,
				Category: Category(point.AQI),
			})
		}
	}
	return flagged
}

// ValidHours counts the non-null points in a series, for run summaries.
func ValidHours(series types.ForecastSeries) int {
	count := 0
	for _, point := range series.Hours {
		if point.Valid {
			count++
		}
	}
	return count
}
