package task

import (
	"time"

	"github.com/leadpulse-crm/LeadPulse/internal/callintel"
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/config"
	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sweepInterval is how often abandoned sessions are looked for
const sweepInterval = time.Hour

// StartStaleSessionSweeper ends in-progress sessions that were never closed,
// e.g. after a crashed client. Ending through the manager keeps the normal
// completion path: score, duration, business write-back and summary note.
func StartStaleSessionSweeper(db *gorm.DB, manager *callintel.Manager) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	sweepStaleSessions(db, manager)
	for range ticker.C {
		sweepStaleSessions(db, manager)
	}
}

func sweepStaleSessions(db *gorm.DB, manager *callintel.Manager) {
	maxAge := time.Duration(config.GlobalConfig.StaleSessionHours) * time.Hour
	cutoff := time.Now().Add(-maxAge)

	sessions, err := models.ListStaleSessions(db, cutoff)
	if err != nil {
		logger.Error("Failed to list stale sessions", zap.Error(err))
		return
	}

	for _, session := range sessions {
		if _, err := manager.End(session.SessionID, ""); err != nil {
			logger.Error("Failed to end stale session",
				zap.String("sessionId", session.SessionID), zap.Error(err))
			continue
		}
		logger.Warn("ended stale call session",
			zap.String("sessionId", session.SessionID),
			zap.Uint("businessId", session.BusinessID),
			zap.Time("startedAt", session.StartedAt))
	}
}
