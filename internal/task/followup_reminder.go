package task

import (
	"time"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/config"
	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartFollowUpReminder starts the daily follow-up reminder scheduled task
func StartFollowUpReminder(db *gorm.DB) {
	// Execute a check immediately at startup
	checkDueFollowUps(db)

	// Use cron for scheduled execution
	c := cron.New()

	schedule := config.GlobalConfig.FollowUpSchedule

	_, err := c.AddFunc(schedule, func() {
		checkDueFollowUps(db)
	})
	if err != nil {
		logger.Error("Failed to add follow-up reminder cron job", zap.Error(err))
		return
	}

	c.Start()

	logger.Info("Follow-up reminder started", zap.String("schedule", schedule))
}

// checkDueFollowUps logs every business whose follow-up date is today or
// overdue so the call list can be worked from the morning log
func checkDueFollowUps(db *gorm.DB) {
	businesses, err := models.ListDueFollowUps(db, time.Now())
	if err != nil {
		logger.Error("Failed to list due follow-ups", zap.Error(err))
		return
	}
	if len(businesses) == 0 {
		logger.Info("No follow-ups due today")
		return
	}

	logger.Info("Follow-ups due", zap.Int("count", len(businesses)))
	for _, b := range businesses {
		logger.Info("follow-up due",
			zap.Uint("businessId", b.ID),
			zap.String("name", b.Name),
			zap.String("lastDisposition", b.LastDisposition),
			zap.Timep("followUpDate", b.FollowUpDate))
	}
}
