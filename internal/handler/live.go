package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/leadpulse-crm/LeadPulse/internal/callintel"
	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"github.com/leadpulse-crm/LeadPulse/pkg/response"
	"go.uber.org/zap"
)

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// livePushInterval is how often a snapshot is pushed to connected clients
const livePushInterval = time.Second

// LiveCallFeed streams call snapshots over a WebSocket so the call screen can
// show the ticking timer, score and tips without polling. The stream closes
// when the session completes or the client disconnects.
func (h *Handlers) LiveCallFeed(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if _, err := h.manager.Snapshot(sessionID); err != nil {
		if errors.Is(err, callintel.ErrSessionNotFound) {
			response.FailWithStatus(c, http.StatusNotFound, "Call session not found", err)
			return
		}
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to load call session", err)
		return
	}

	conn, err := liveUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("live feed upgrade failed", zap.String("sessionId", sessionID), zap.Error(err))
		return
	}
	defer conn.Close()

	// Drain client frames so close handshakes are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(livePushInterval)
	defer ticker.Stop()

	for {
		snapshot, err := h.manager.Snapshot(sessionID)
		if err != nil {
			return
		}
		if err := conn.WriteJSON(snapshot); err != nil {
			return
		}
		if snapshot.Status != "in_progress" {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "call ended"))
			return
		}
		<-ticker.C
	}
}
