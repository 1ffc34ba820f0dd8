package task

import (
	"github.com/leadpulse-crm/LeadPulse/internal/callintel"
	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartAll launches every background task. Called once from main after the
// call manager is up.
func StartAll(db *gorm.DB, manager *callintel.Manager) {
	go StartFollowUpReminder(db)
	go StartStaleSessionSweeper(db, manager)
	logger.Info("background tasks started", zap.Int("count", 2))
}
