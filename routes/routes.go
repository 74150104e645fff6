package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-airwatch/forecast"
	"go-airwatch/geocode"
	"go-airwatch/handlers"
	"go-airwatch/mailer"
	"go-airwatch/processor"
)

func SetupRouter(
	firestoreClient *firestore.Client,
	geocoder *geocode.Client,
	forecaster *forecast.Client,
	openaiClient *openai.Client,
	mail *mailer.Mailer,
	alertJob *processor.AlertJob,
) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to AirWatch!",
		})
	})

	api := r.Group("/api/airwatch")
	{
		api.GET("/aqi", func(c *gin.Context) {
			handlers.GetAQIHandler(c, firestoreClient, geocoder, forecaster)
		})
		api.GET("/lookups", func(c *gin.Context) {
			handlers.GetLookupsHandler(c, firestoreClient)
		})

		api.GET("/alerts", func(c *gin.Context) {
			handlers.GetAlertsHandler(c, firestoreClient)
		})
		api.GET("/alerts/summary", func(c *gin.Context) {
			handlers.GetAlertSummaryHandler(c, firestoreClient)
		})
		api.DELETE("/alerts/:id", func(c *gin.Context) {
			handlers.DeleteAlertHandler(c, firestoreClient)
		})
		api.POST("/alertjob/run", func(c *gin.Context) {
			handlers.RunAlertJobHandler(c, alertJob)
		})

		api.POST("/assessments", func(c *gin.Context) {
			handlers.CreateAssessmentHandler(c, firestoreClient)
		})
		api.POST("/advisory", func(c *gin.Context) {
			handlers.CreateAdvisoryHandler(c, firestoreClient, geocoder, forecaster, openaiClient)
		})
		api.GET("/reports", func(c *gin.Context) {
			handlers.GetReportsHandler(c, firestoreClient)
		})
		api.POST("/reports/:id/email", func(c *gin.Context) {
			handlers.EmailReportHandler(c, firestoreClient, mail)
		})
	}

	return r
}
