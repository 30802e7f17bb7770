package helper

import (
	"log"
	"time"

	"playground_store/constants"
	"playground_store/database"
	"playground_store/model"
	"playground_store/utils"

	"github.com/go-co-op/gocron/v2"
)

var reminderScheduler gocron.Scheduler

var istZone = time.FixedZone("IST", 5*3600+1800)

// SendInstallationReminders emails every customer whose installation is
// scheduled for tomorrow. Read-only against the store: the job never touches
// order or installation state.
func SendInstallationReminders() {
	log.Println("[CRON] SendInstallationReminders triggered")

	db := database.DB
	dayStart := Clock.Now().In(istZone).Truncate(24 * time.Hour).Add(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var installations []model.Installation
	if err := db.
		Preload("Customer").
		Preload("Team").
		Preload("Order").
		Where("status = ? AND scheduled_date >= ? AND scheduled_date < ?", constants.INSTALLATION_SCHEDULED, dayStart, dayEnd).
		Find(&installations).Error; err != nil {
		log.Printf("failed to load tomorrow's installations: %v", err)
		return
	}

	for _, installation := range installations {
		if installation.Customer == nil || installation.Customer.Email == "" {
			continue
		}

		data := utils.InstallationReminderData{
			CustomerName:  installation.Customer.Name,
			PublicCode:    installation.PublicCode,
			ScheduledDate: installation.ScheduledDate.In(istZone).Format("02/01/2006"),
		}
		if installation.Order != nil {
			data.OrderNumber = installation.Order.OrderNumber
		}
		if installation.ScheduledTime != nil {
			data.ScheduledTime = installation.ScheduledTime.Start + " - " + installation.ScheduledTime.End
		}
		if installation.Team != nil {
			data.TeamName = installation.Team.Name
			data.TeamPhone = installation.Team.Phone
		}

		utils.SendInstallationReminderEmail(installation.Customer.Email, data)
	}

	log.Printf("queued %d installation reminders", len(installations))
}

func StartInstallationReminderScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(istZone),
	)
	if err != nil {
		log.Fatal(err)
	}

	reminderScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(7, 0, 0),
			),
		),
		gocron.NewTask(SendInstallationReminders),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("installation reminder scheduler started (07:00 IST)")
}

func StopInstallationReminderScheduler() {
	if reminderScheduler != nil {
		_ = reminderScheduler.Shutdown()
	}
}
