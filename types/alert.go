package types

import "time"

// Alert is one triggered forecast hour for one user, stored in /alerts.
// Delivered flips false -> true exactly once, right after a successful send.
type Alert struct {
	ID          string     `firestore:"-" json:"id"` // doc ID
	UID         string     `firestore:"uid" json:"uid"`
	Location    string     `firestore:"location" json:"location"`
	AQI         int        `firestore:"aqi" json:"aqi"`
	Category    string     `firestore:"category" json:"category"`
	Pollutants  Pollutants `firestore:"pollutants" json:"pollutants"`
	ForecastFor time.Time  `firestore:"forecastFor" json:"forecastFor"`
	Delivered   bool       `firestore:"delivered" json:"delivered"`
	DeliveredAt time.Time  `firestore:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"createdAt"`
}
