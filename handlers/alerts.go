package handlers

import (
	"context"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-airwatch/db"
	"go-airwatch/processor"
)

// GetAlertsHandler returns a user's alert history, newest forecast hour first.
func GetAlertsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid query parameter is required"})
		return
	}

	alerts, err := db.GetAlertsForUser(c.Request.Context(), firestoreClient, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// GetAlertSummaryHandler returns alert counts grouped by AQI category band.
func GetAlertSummaryHandler(c *gin.Context, firestoreClient *firestore.Client) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid query parameter is required"})
		return
	}

	counts, err := db.CountAlertsByCategory(c.Request.Context(), firestoreClient, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// DeleteAlertHandler removes one alert from a user's history.
func DeleteAlertHandler(c *gin.Context, firestoreClient *firestore.Client) {
	alertID := c.Param("id")
	if alertID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert id is required"})
		return
	}

	if err := db.DeleteAlert(c.Request.Context(), firestoreClient, alertID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": alertID})
}

// RunAlertJobHandler triggers the daily pipeline on demand. Useful after a
// crash or a config change; note a re-run re-sends SMS for hours still above
// threshold.
func RunAlertJobHandler(c *gin.Context, job *processor.AlertJob) {
	// Detached from the request context: a client disconnect must not cancel
	// the run mid-subscriber. Same cap as the scheduled run.
	ctx, cancel := context.WithTimeout(context.Background(), processor.RunTimeout)
	defer cancel()

	summary := job.Run(ctx)
	c.JSON(http.StatusOK, gin.H{
		"usersProcessed": summary.UsersProcessed,
		"usersSkipped":   summary.UsersSkipped,
		"hoursEvaluated": summary.HoursEvaluated,
		"hoursFlagged":   summary.HoursFlagged,
		"alertsSent":     summary.AlertsSent,
	})
}
