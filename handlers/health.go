package handlers

import (
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-airwatch/advisory"
	"go-airwatch/aqi"
	"go-airwatch/db"
	"go-airwatch/forecast"
	"go-airwatch/geocode"
	"go-airwatch/mailer"
	"go-airwatch/types"
)

// CreateAssessmentHandler stores a health self-assessment.
func CreateAssessmentHandler(c *gin.Context, firestoreClient *firestore.Client) {
	var assessment types.Assessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if assessment.UID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
		return
	}
	assessment.CreatedAt = time.Now().UTC()

	id, err := db.SaveAssessment(c.Request.Context(), firestoreClient, assessment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// CreateAdvisoryHandler generates an LLM health advisory from the user's
// latest assessment and the current AQI at their location, then persists it
// as a report.
func CreateAdvisoryHandler(c *gin.Context, firestoreClient *firestore.Client, geocoder *geocode.Client, forecaster *forecast.Client, openaiClient *openai.Client) {
	var request struct {
		UID      string `json:"uid"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.UID == "" || request.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid and location are required"})
		return
	}

	ctx := c.Request.Context()

	assessment, err := db.GetLatestAssessment(ctx, firestoreClient, request.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	place, err := geocoder.Resolve(ctx, request.Location)
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

	current, category, ok := currentAQI(series)
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": "forecast contained no valid hours"})
		return
	}

	text, err := advisory.Generate(ctx, openaiClient, assessment, place.Name, current, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report := types.Report{
		UID:       request.UID,
		Location:  place.Name,
		AQI:       current,
		Category:  category,
		Advisory:  text,
		CreatedAt: time.Now().UTC(),
	}
	id, err := db.SaveReport(ctx, firestoreClient, report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	report.ID = id

	c.JSON(http.StatusCreated, report)
}

// GetReportsHandler lists a user's stored health reports.
func GetReportsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid query parameter is required"})
		return
	}

	reports, err := db.GetReportsForUser(c.Request.Context(), firestoreClient, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// EmailReportHandler emails a stored report to its owner.
func EmailReportHandler(c *gin.Context, firestoreClient *firestore.Client, mail *mailer.Mailer) {
	reportID := c.Param("id")
	ctx := c.Request.Context()

	report, err := db.GetReport(ctx, firestoreClient, reportID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	user, err := db.GetUser(ctx, firestoreClient, report.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if user.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user has no email on file"})
		return
	}

	if err := mail.SendReport(user.Email, report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sentTo": user.Email})
}

func currentAQI(series types.ForecastSeries) (int, string, bool) {
	for _, point := range series.Hours {
		if point.Valid {
			return point.AQI, aqi.Category(point.AQI), true
		}
	}
	return 0, "", false
}
