package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/boyidapuvivek/CaptureRideBackend/services"
)

// StartDailyScheduler sweeps expired OTP documents once a day. The mongo TTL
// index does the real collection; the sweep is a backstop and gives a count
// in the logs.
func StartDailyScheduler() {
	c := cron.New()

	// Runs every day at 00:05 AM
	c.AddFunc("5 0 * * *", func() {
		log.Println("Running daily expired OTP cleanup...")
		RunOTPCleanup()
	})

	c.Start()
}

func RunOTPCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := services.CleanupExpiredOTPs(ctx)
	if err != nil {
		log.Println("Error cleaning up expired OTPs:", err)
		return
	}
	log.Println("Expired OTPs deleted:", deleted)
}
