package processor

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-airwatch/aqi"
	"go-airwatch/geocode"
	"go-airwatch/sms"
	"go-airwatch/types"
)

// The orchestrator only sees these five contracts; the real implementations
// live in geocode, forecast, sms, and db.
type (
	Directory interface {
		ListAlertEligible(ctx context.Context) ([]types.UserData, error)
	}
	Geocoder interface {
		Resolve(ctx context.Context, query string) (geocode.Place, error)
	}
	Forecaster interface {
		Fetch(lat, long float64) (types.ForecastSeries, error)
	}
	Sender interface {
		Send(ctx context.Context, to, body string) (sms.Receipt, error)
	}
	Ledger interface {
		Record(ctx context.Context, alert types.Alert) (string, error)
		MarkDelivered(ctx context.Context, uid string, forecastFor, deliveredAt time.Time) error
	}
)

// RunTimeout bounds a whole run so a hung external call cannot stall the
// scheduler into the next day. The manual trigger uses the same cap.
const RunTimeout = 30 * time.Minute

// RunSummary is the tally the job logs at the end of a run. It is not
// persisted; the individual alert records are the durable trail.
type RunSummary struct {
	UsersProcessed int
	UsersSkipped   int
	HoursEvaluated int
	HoursFlagged   int
	AlertsSent     int
}

// AlertJob walks every alert-eligible user once: resolve their home location,
// fetch the 24h AQI forecast, and for each hour above the threshold record an
// alert, text the user, and mark the alert delivered.
type AlertJob struct {
	directory  Directory
	geocoder   Geocoder
	forecaster Forecaster
	sender     Sender
	ledger     Ledger
	threshold  int
}

func NewAlertJob(directory Directory, geocoder Geocoder, forecaster Forecaster, sender Sender, ledger Ledger, threshold int) *AlertJob {
	return &AlertJob{
		directory:  directory,
		geocoder:   geocoder,
		forecaster: forecaster,
		sender:     sender,
		ledger:     ledger,
		threshold:  threshold,
	}
}

// Run processes users strictly sequentially: one user's full sub-flow
// completes before the next begins, which keeps the outbound request rate to
// the forecast and SMS providers bounded. A failure for one user never
// aborts the run.
func (j *AlertJob) Run(ctx context.Context) RunSummary {
	var summary RunSummary

	users, err := j.directory.ListAlertEligible(ctx)
	if err != nil {
		log.Printf("AlertJob: failed to load eligible users: %v", err)
		return summary
	}
	log.Printf("AlertJob: starting run for %d eligible users", len(users))

	for _, user := range users {
		if err := j.processUser(ctx, user, &summary); err != nil {
			log.Printf("AlertJob: skipping user %s (%s): %v", user.UID, user.HomeLocation, err)
			summary.UsersSkipped++
			continue
		}
		summary.UsersProcessed++
	}

	log.Printf("AlertJob: run complete: processed=%d skipped=%d hoursEvaluated=%d hoursFlagged=%d alertsSent=%d",
		summary.UsersProcessed, summary.UsersSkipped, summary.HoursEvaluated, summary.HoursFlagged, summary.AlertsSent)
	return summary
}

func (j *AlertJob) processUser(ctx context.Context, user types.UserData, summary *RunSummary) (err error) {
	// Per-user boundary: a panic anywhere in the sub-flow becomes a logged
	// error for this user and the run moves on.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing user: %v", r)
		}
	}()

	place, err := j.geocoder.Resolve(ctx, user.HomeLocation)
	if err != nil {
		return err
	}

	series, err := j.forecaster.Fetch(place.Lat, place.Long)
	if err != nil {
		return err
	}
	series.Location = place.Name

	summary.HoursEvaluated += aqi.ValidHours(series)

	flagged := aqi.Evaluate(series, j.threshold)
	summary.HoursFlagged += len(flagged)
	if len(flagged) == 0 {
		log.Printf("AlertJob: %s (%s): forecast below threshold, nothing to send", user.UID, place.Name)
		return nil
	}

	// Flagged hours go out in chronological order. Each is its own event: a
	// failed send leaves that alert undelivered and moves to the next hour.
	for _, hour := range flagged {
		j.dispatchHour(ctx, user, place, hour, summary)
	}
	return nil
}

func (j *AlertJob) dispatchHour(ctx context.Context, user types.UserData, place geocode.Place, hour aqi.FlaggedHour, summary *RunSummary) {
	alert := types.Alert{
		UID:         user.UID,
		Location:    place.Name,
		AQI:         hour.Point.AQI,
		Category:    hour.Category,
		Pollutants:  hour.Point.Pollutants,
		ForecastFor: hour.Point.Timestamp,
		CreatedAt:   time.Now().UTC(),
	}

	// Record intent before sending: an unaudited send is worse than a missed
	// one, so a failed ledger write skips the send entirely.
	if _, err := j.ledger.Record(ctx, alert); err != nil {
		log.Printf("AlertJob: %s: ledger write failed for %s, send skipped: %v",
			user.UID, alert.ForecastFor.Format(time.RFC3339), err)
		return
	}

	body := formatAlertMessage(alert)
	if _, err := j.sender.Send(ctx, user.PhoneNumber, body); err != nil {
		log.Printf("AlertJob: %s: SMS delivery failed for %s: %v",
			user.UID, alert.ForecastFor.Format(time.RFC3339), err)
		return
	}
	summary.AlertsSent++

	if err := j.ledger.MarkDelivered(ctx, user.UID, alert.ForecastFor, time.Now().UTC()); err != nil {
		log.Printf("AlertJob: %s: failed to mark alert delivered for %s: %v",
			user.UID, alert.ForecastFor.Format(time.RFC3339), err)
	}
}

func formatAlertMessage(alert types.Alert) string {
	return fmt.Sprintf("AirWatch alert: AQI %d (%s) expected near %s at %s. Consider limiting outdoor activity.",
		alert.AQI, alert.Category, alert.Location, alert.ForecastFor.Format("3PM Mon Jan 2"))
}
