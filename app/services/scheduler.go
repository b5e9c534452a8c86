package services

import (
	"log"
	"time"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

// StartScheduler starts the background task scheduler.
func StartScheduler(engine *ledger.Engine, notifier *Notifier) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 8:05 AM
			if now.Hour() == 8 && now.Minute() == 5 {
				log.Println("Triggering scheduled tasks [08:05]...")

				if err := RemindUnsettledOverdrafts(engine, notifier); err != nil {
					log.Printf("Error sending overdraft reminder: %v", err)
				}
			}
		}
	}()
}

// RemindUnsettledOverdrafts pushes the daily list of open liabilities.
func RemindUnsettledOverdrafts(engine *ledger.Engine, notifier *Notifier) error {
	overdrafts, err := engine.Overdrafts()
	if err != nil {
		return err
	}

	unsettled := []*models.Overdraft{}
	for _, od := range overdrafts {
		if !od.IsSettled {
			unsettled = append(unsettled, od)
		}
	}
	log.Printf("Overdraft reminder: %d unsettled liabilities", len(unsettled))
	notifier.DailyReminder(unsettled)
	return nil
}
