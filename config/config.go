package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the adapters and the alert job need. It is built
// once in main and passed into constructors so the adapters never reach into
// the environment themselves.
type Config struct {
	Port               string
	FirebaseCreds      string // base64-encoded service account JSON
	MapsAPIKey         string
	OpenAIAPIKey       string
	ForecastBaseURL    string
	SMS                SMSConfig
	SMTP               SMTPConfig
	AlertThreshold     int
	AlertJobSpec       string
	DefaultCountryCode string
}

type SMSConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	FromNumber string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func Load() *Config {
	// Load .env if present; in deployed environments the vars are set directly.
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		FirebaseCreds:   os.Getenv("FIREBASE_CREDENTIALS"),
		MapsAPIKey:      os.Getenv("MAPS_CREDENTIALS"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		ForecastBaseURL: getEnv("FORECAST_BASE_URL", "https://air-quality-api.open-meteo.com/v1/air-quality"),
		SMS: SMSConfig{
			BaseURL:    getEnv("SMS_BASE_URL", "https://api.twilio.com"),
			AccountSID: os.Getenv("SMS_ACCOUNT_SID"),
			AuthToken:  os.Getenv("SMS_AUTH_TOKEN"),
			FromNumber: os.Getenv("SMS_FROM_NUMBER"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "alerts@airwatch.app"),
		},
		AlertThreshold:     getEnvAsInt("ALERT_THRESHOLD", 94),
		AlertJobSpec:       getEnv("ALERT_JOB_SPEC", "0 10 * * *"),
		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "+1"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
