package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/config"
	"github.com/leadpulse-crm/LeadPulse/pkg/response"
)

var serverStartedAt = time.Now()

// HealthCheck health check endpoint
func (h *Handlers) HealthCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database connection failed"})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database ping failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"server":  config.GlobalConfig.ServerName,
		"uptime":  time.Since(serverStartedAt).Round(time.Second).String(),
		"version": config.GlobalConfig.Mode,
	})
}

// ConversionStats aggregates completed calls per disposition with average
// deal score, the call-floor view of how outreach is converting
func (h *Handlers) ConversionStats(c *gin.Context) {
	stats, err := models.GetDispositionStats(h.db)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to load conversion stats", err)
		return
	}

	var totalCalls int64
	for _, s := range stats {
		totalCalls += s.Count
	}
	response.Success(c, "ok", gin.H{
		"totalCalls":    totalCalls,
		"byDisposition": stats,
	})
}
