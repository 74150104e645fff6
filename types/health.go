package types

import "time"

// Assessment is a health self-assessment submitted from the client.
type Assessment struct {
	ID           string    `firestore:"-" json:"id"`
	UID          string    `firestore:"uid" json:"uid"`
	AgeGroup     string    `firestore:"ageGroup" json:"ageGroup"`
	Conditions   []string  `firestore:"conditions" json:"conditions"` // asthma, heart disease, ...
	OutdoorHours int       `firestore:"outdoorHours" json:"outdoorHours"`
	Smoker       bool      `firestore:"smoker" json:"smoker"`
	Symptoms     []string  `firestore:"symptoms" json:"symptoms"`
	Notes        string    `firestore:"notes" json:"notes"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}

// Report is an LLM-generated health advisory persisted for later viewing.
type Report struct {
	ID        string    `firestore:"-" json:"id"`
	UID       string    `firestore:"uid" json:"uid"`
	Location  string    `firestore:"location" json:"location"`
	AQI       int       `firestore:"aqi" json:"aqi"`
	Category  string    `firestore:"category" json:"category"`
	Advisory  string    `firestore:"advisory" json:"advisory"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Lookup records one user-initiated AQI query.
type Lookup struct {
	ID         string     `firestore:"-" json:"id"`
	UID        string     `firestore:"uid" json:"uid"`
	Location   string     `firestore:"location" json:"location"`
	AQI        int        `firestore:"aqi" json:"aqi"`
	Category   string     `firestore:"category" json:"category"`
	Pollutants Pollutants `firestore:"pollutants" json:"pollutants"`
	CreatedAt  time.Time  `firestore:"createdAt" json:"createdAt"`
}
