package helper

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/CuCryptos/cruise-photos/config"
	"github.com/CuCryptos/cruise-photos/repository"
	"github.com/CuCryptos/cruise-photos/utils"
)

var summaryScheduler gocron.Scheduler

// StartDailySummaryScheduler mails yesterday's sales rollup to the admin
// inbox every morning at 06:00.
func StartDailySummaryScheduler(orders *repository.OrderRepo, mailer *utils.SMTPMailer) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	summaryScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(6, 0, 0),
			),
		),
		gocron.NewTask(func() { sendDailySummary(orders, mailer) }),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
}

func sendDailySummary(orders *repository.OrderRepo, mailer *utils.SMTPMailer) {
	adminEmail := config.Config("ADMIN_EMAIL")
	if adminEmail == "" {
		return
	}

	stats, err := orders.StatsSince(time.Now().AddDate(0, 0, -1))
	if err != nil {
		log.Printf("daily summary query failed: %v", err)
		return
	}

	body := fmt.Sprintf(
		"Sales for the last 24h\n\npaid orders: %d\nfailed orders: %d\nstill pending: %d\nrevenue: $%.2f\n",
		stats.PaidCount, stats.FailedCount, stats.PendingCount,
		float64(stats.RevenueCents)/100,
	)
	if err := mailer.SendDailySummary(adminEmail, body); err != nil {
		log.Printf("daily summary email failed: %v", err)
	}
}

func StopDailySummaryScheduler() {
	if summaryScheduler != nil {
		_ = summaryScheduler.Shutdown()
	}
}
