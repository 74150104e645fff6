package main

import (
	"log"

	"github.com/sashabaranov/go-openai"

	"go-airwatch/config"
	"go-airwatch/cronjobs"
	"go-airwatch/db"
	"go-airwatch/forecast"
	"go-airwatch/geocode"
	"go-airwatch/mailer"
	"go-airwatch/processor"
	"go-airwatch/routes"
	"go-airwatch/sms"
)

func main() {
	cfg := config.Load()

	// Init firestore
	firestoreClient, err := db.InitFirestore(cfg.FirebaseCreds)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	geocoder, err := geocode.NewClient(cfg.MapsAPIKey)
	if err != nil {
		log.Fatalf("Failed to create geocoding client: %v", err)
	}

	forecaster := forecast.NewClient(cfg.ForecastBaseURL)
	smsClient := sms.NewClient(cfg.SMS, cfg.DefaultCountryCode)
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)
	mail := mailer.New(cfg.SMTP)

	alertJob := processor.NewAlertJob(
		processor.FirestoreDirectory{Client: firestoreClient},
		geocoder,
		forecaster,
		smsClient,
		processor.FirestoreLedger{Client: firestoreClient},
		cfg.AlertThreshold,
	)

	// Daily SMS alert run
	cronjobs.InitCronJobs(alertJob, cfg.AlertJobSpec)

	r := routes.SetupRouter(firestoreClient, geocoder, forecaster, openaiClient, mail, alertJob)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
