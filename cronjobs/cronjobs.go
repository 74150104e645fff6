package cronjobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"go-airwatch/processor"
)

// InitCronJobs schedules the daily SMS alert run. The cron expression comes
// from config ("0 10 * * *" by default: 10:00 server-local, once a day).
func InitCronJobs(job *processor.AlertJob, alertSpec string) *cron.Cron {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	_, err := c.AddFunc(alertSpec, func() {
		log.Println("\nCronJob: Daily AQI Alert Run")
		ctx, cancel := context.WithTimeout(context.Background(), processor.RunTimeout)
		defer cancel()
		job.Run(ctx)
	})
	if err != nil {
		log.Println("Error scheduling daily alert run:", err)
	}

	c.Start()
	return c
}
