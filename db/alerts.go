package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-airwatch/types"
)

// alertDocID derives the alert document ID from the user and the triggering
// forecast hour, so a re-run of the job for the same hour overwrites the
// existing record instead of duplicating it.
func alertDocID(uid string, forecastFor time.Time) string {
	return HashString(uid + "|" + forecastFor.UTC().Format(time.RFC3339))
}

// RecordAlert writes an alert with delivered=false and returns its document
// ID. This runs BEFORE any send attempt: a crash between record and send
// still leaves an auditable trace.
func RecordAlert(ctx context.Context, client *firestore.Client, alert types.Alert) (string, error) {
	docID := alertDocID(alert.UID, alert.ForecastFor)

	data := map[string]interface{}{
		"uid":         alert.UID,
		"location":    alert.Location,
		"aqi":         alert.AQI,
		"category":    alert.Category,
		"pollutants":  alert.Pollutants,
		"forecastFor": alert.ForecastFor,
		"delivered":   false,
		"createdAt":   alert.CreatedAt,
	}

	_, err := client.Collection("alerts").Doc(docID).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return "", fmt.Errorf("failed to record alert for %s: %w", alert.UID, err)
	}
	return docID, nil
}

// MarkAlertDelivered flips the delivery flag for the alert matching
// uid + forecast hour. A missing record is a logged no-op, not an error.
func MarkAlertDelivered(ctx context.Context, client *firestore.Client, uid string, forecastFor, deliveredAt time.Time) error {
	docID := alertDocID(uid, forecastFor)

	updates := []firestore.Update{
		{Path: "delivered", Value: true},
		{Path: "deliveredAt", Value: deliveredAt},
	}

	_, err := client.Collection("alerts").Doc(docID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			log.Printf("MarkAlertDelivered: no alert on record for %s at %s", uid, forecastFor.Format(time.RFC3339))
			return nil
		}
		return fmt.Errorf("failed to mark alert delivered for %s: %w", uid, err)
	}
	return nil
}

// GetAlertsForUser lists a user's alerts newest forecast hour first.
func GetAlertsForUser(ctx context.Context, client *firestore.Client, uid string) ([]types.Alert, error) {
	var alerts []types.Alert

	iter := client.Collection("alerts").
		Where("uid", "==", uid).
		OrderBy("forecastFor", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating alerts: %w", err)
		}

		var alert types.Alert
		if err := doc.DataTo(&alert); err != nil {
			return nil, fmt.Errorf("error converting document %s to Alert: %w", doc.Ref.ID, err)
		}
		alert.ID = doc.Ref.ID
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// CountAlertsByCategory aggregates a user's alerts per AQI category band.
func CountAlertsByCategory(ctx context.Context, client *firestore.Client, uid string) (map[string]int, error) {
	alerts, err := GetAlertsForUser(ctx, client, uid)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, alert := range alerts {
		counts[alert.Category]++
	}
	return counts, nil
}

// DeleteAlert removes one alert document. User-initiated only; the alert job
// never deletes.
func DeleteAlert(ctx context.Context, client *firestore.Client, alertID string) error {
	_, err := client.Collection("alerts").Doc(alertID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete alert %s: %w", alertID, err)
	}
	return nil
}
