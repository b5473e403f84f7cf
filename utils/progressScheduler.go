package utils

import (
	"log"
	"time"

	"traintrack/database"
	"traintrack/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializeProgressScheduler sets up the nightly progress reconciliation job.
// Module completions refresh the denormalized total on write, but a course
// whose module count changes while nobody completes anything would otherwise
// keep stale totals and percentages forever.
func InitializeProgressScheduler() {
	logScheduler("Initializing progress scheduler...")

	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		logScheduler("Running nightly progress reconciliation...")
		ReconcileProgressTotals()
	})

	c.Start()
	logScheduler("Progress scheduler started - runs daily at 2 AM")
}

// ReconcileProgressTotals re-syncs every progress row's denormalized
// total_modules and progress_percent against its current course row.
func ReconcileProgressTotals() {
	db := database.Database.Db

	var records []models.EmployeeProgress
	if err := db.Find(&records).Error; err != nil {
		logScheduler("Error fetching progress records: " + err.Error())
		return
	}

	updated := 0
	for _, record := range records {
		var course models.Course
		if err := db.First(&course, record.CourseID).Error; err != nil {
			logScheduler("Error fetching course for progress record: " + err.Error())
			continue
		}

		if record.TotalModules == course.TotalModules {
			continue
		}

		record.TotalModules = course.TotalModules
		record.ProgressPercent = record.Percent()

		if err := db.Model(&models.EmployeeProgress{}).Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"total_modules":    record.TotalModules,
				"progress_percent": record.ProgressPercent,
			}).Error; err != nil {
			logScheduler("Error updating progress record: " + err.Error())
			continue
		}
		updated++
	}

	log.Printf("[PROGRESS-SCHEDULER %s] Reconciliation finished, records updated: %d", time.Now().Format(time.RFC3339), updated)
}
