package processor

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"go-airwatch/db"
	"go-airwatch/types"
)

// FirestoreDirectory exposes the users collection as the job's subscriber
// directory.
type FirestoreDirectory struct {
	Client *firestore.Client
}

func (d FirestoreDirectory) ListAlertEligible(ctx context.Context) ([]types.UserData, error) {
	return db.GetAlertEligibleUsers(ctx, d.Client)
}

// FirestoreLedger backs the alert ledger with the alerts collection.
type FirestoreLedger struct {
	Client *firestore.Client
}

func (l FirestoreLedger) Record(ctx context.Context, alert types.Alert) (string, error) {
	return db.RecordAlert(ctx, l.Client, alert)
}

func (l FirestoreLedger) MarkDelivered(ctx context.Context, uid string, forecastFor, deliveredAt time.Time) error {
	return db.MarkAlertDelivered(ctx, l.Client, uid, forecastFor, deliveredAt)
}
