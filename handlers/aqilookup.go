package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-airwatch/aqi"
	"go-airwatch/db"
	"go-airwatch/forecast"
	"go-airwatch/geocode"
	"go-airwatch/types"
)

// GetAQIHandler resolves a free-text location, fetches the aligned 24h
// forecast, and returns the current hour plus the window. If a uid is given
// the lookup is recorded for that user.
func GetAQIHandler(c *gin.Context, firestoreClient *firestore.Client, geocoder *geocode.Client, forecaster *forecast.Client) {
	locationParam := c.Query("location")
	if locationParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location query parameter is required"})
		return
	}

	place, err := geocoder.Resolve(c.Request.Context(), locationParam)
	if err != nil {
		if errors.Is(err, geocode.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no match for location"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	series, err := forecaster.Fetch(place.Lat, place.Long)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	series.Location = place.Name

	type hourResponse struct {
		Timestamp  time.Time        `json:"timestamp"`
		AQI        int              `json:"aqi"`
		Category   string           `json:"category"`
		Pollutants types.Pollutants `json:"pollutants"`
	}

	var hours []hourResponse
	for _, point := range series.Hours {
		if !point.Valid {
			continue
		}
		hours = append(hours, hourResponse{
			Timestamp:  point.Timestamp,
			AQI:        point.AQI,
			Category:   aqi.Category(point.AQI),
			Pollutants: point.Pollutants,
		})
	}

	if len(hours) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "forecast contained no valid hours"})
		return
	}
	current := hours[0]

	// Record the lookup when the caller is signed in.
	if uid := c.Query("uid"); uid != "" {
		_, err := db.SaveLookup(c.Request.Context(), firestoreClient, types.Lookup{
			UID:        uid,
			Location:   place.Name,
			AQI:        current.AQI,
			Category:   current.Category,
			Pollutants: current.Pollutants,
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			log.Printf("GetAQIHandler: failed to save lookup for %s: %v", uid, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"location": place.Name,
		"lat":      place.Lat,
		"long":     place.Long,
		"current":  current,
		"hours":    hours,
	})
}

// GetLookupsHandler lists a user's saved AQI lookups.
func GetLookupsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid query parameter is required"})
		return
	}

	lookups, err := db.GetLookupsForUser(c.Request.Context(), firestoreClient, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lookups": lookups})
}
