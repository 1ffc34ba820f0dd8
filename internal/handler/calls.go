package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadpulse-crm/LeadPulse/internal/callintel"
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/response"
	"github.com/spf13/cast"
)

// StartCallRequest Start call session request
type StartCallRequest struct {
	BusinessID  uint   `json:"businessId" binding:"required"`
	ContactName string `json:"contactName"`
	ContactRole string `json:"contactRole"`
}

// EndCallRequest End call session request
type EndCallRequest struct {
	Disposition string `json:"disposition"`
}

// EndActiveCallRequest End the active session of a business
type EndActiveCallRequest struct {
	BusinessID  uint   `json:"businessId" binding:"required"`
	Disposition string `json:"disposition"`
}

// CallView is a session enriched with the live-derived fields
type CallView struct {
	Session        *models.CallSession    `json:"session"`
	ElapsedSeconds int64                  `json:"elapsedSeconds"`
	DealScore      int                    `json:"dealScore"`
	Tips           []string               `json:"tips"`
	Objections     []models.CallObjection `json:"objections"`
	PainPoints     []models.CallPainPoint `json:"painPoints"`
}

// StartCall starts a new call session for a business
func (h *Handlers) StartCall(c *gin.Context) {
	var req StartCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	session, err := h.manager.Start(req.BusinessID, req.ContactName, req.ContactRole)
	if err != nil {
		switch {
		case errors.Is(err, callintel.ErrBusinessNotFound):
			response.FailWithStatus(c, http.StatusNotFound, "Business not found", err)
		case errors.Is(err, models.ErrActiveSessionExists):
			response.FailWithStatus(c, http.StatusConflict, "A call is already in progress for this business", err)
		default:
			response.FailWithStatus(c, http.StatusInternalServerError, "Failed to start call session", err)
		}
		return
	}
	response.Success(c, "call session started", session)
}

// PauseCall pauses the live elapsed counter; the session stays in progress
func (h *Handlers) PauseCall(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := h.manager.Pause(sessionID); err != nil {
		h.failCallError(c, err, "Failed to pause call")
		return
	}
	response.Success(c, "call paused", nil)
}

// ResumeCall resumes the live elapsed counter
func (h *Handlers) ResumeCall(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := h.manager.Resume(sessionID); err != nil {
		h.failCallError(c, err, "Failed to resume call")
		return
	}
	response.Success(c, "call resumed", nil)
}

// EndCall ends a session by its ID; ending a completed session is a no-op
func (h *Handlers) EndCall(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req EndCallRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	session, err := h.manager.End(sessionID, req.Disposition)
	if err != nil {
		h.failCallError(c, err, "Failed to end call")
		return
	}
	response.Success(c, "call session ended", session)
}

// EndActiveCall ends the in-progress session of a business; with no active
// session the call is a successful no-op
func (h *Handlers) EndActiveCall(c *gin.Context) {
	var req EndActiveCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	session, err := h.manager.EndActive(req.BusinessID, req.Disposition)
	if err != nil {
		h.failCallError(c, err, "Failed to end call")
		return
	}
	if session == nil {
		response.Success(c, "no active call session", nil)
		return
	}
	response.Success(c, "call session ended", session)
}

// GetCall returns a session with its live score, tips and children
func (h *Handlers) GetCall(c *gin.Context) {
	sessionID := c.Param("sessionId")
	view, err := h.buildCallView(sessionID)
	if err != nil {
		h.failCallError(c, err, "Failed to load call session")
		return
	}
	response.Success(c, "get call session success", view)
}

// GetActiveCall reattaches to the in-progress session of a business,
// reconstructing the elapsed counter after a reload or crash
func (h *Handlers) GetActiveCall(c *gin.Context) {
	businessID := cast.ToUint(c.Param("businessId"))
	if businessID == 0 {
		response.Fail(c, "Invalid business ID", nil)
		return
	}

	session, elapsed, err := h.manager.Attach(businessID)
	if err != nil {
		if errors.Is(err, callintel.ErrNoActiveSession) {
			response.FailWithStatus(c, http.StatusNotFound, "No active call session", err)
			return
		}
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to attach to call session", err)
		return
	}

	view, err := h.buildCallView(session.SessionID)
	if err != nil {
		h.failCallError(c, err, "Failed to load call session")
		return
	}
	view.ElapsedSeconds = elapsed
	response.Success(c, "attached to call session", view)
}

// ListCallSessions returns a business's sessions, most recent first
func (h *Handlers) ListCallSessions(c *gin.Context) {
	businessID := cast.ToUint(c.Param("businessId"))
	if businessID == 0 {
		response.Fail(c, "Invalid business ID", nil)
		return
	}
	limit := cast.ToInt(c.DefaultQuery("limit", "50"))

	sessions, err := models.ListCallSessions(h.db, businessID, limit)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to list call sessions", err)
		return
	}
	response.Success(c, "list call sessions success", sessions)
}

func (h *Handlers) buildCallView(sessionID string) (*CallView, error) {
	snapshot, err := h.manager.Snapshot(sessionID)
	if err != nil {
		return nil, err
	}
	session, err := models.GetCallSession(h.db, sessionID)
	if err != nil {
		return nil, err
	}
	objections, err := models.ListObjections(h.db, sessionID)
	if err != nil {
		return nil, err
	}
	painPoints, err := models.ListPainPoints(h.db, sessionID)
	if err != nil {
		return nil, err
	}
	return &CallView{
		Session:        session,
		ElapsedSeconds: snapshot.ElapsedSeconds,
		DealScore:      snapshot.DealScore,
		Tips:           snapshot.Tips,
		Objections:     objections,
		PainPoints:     painPoints,
	}, nil
}

func (h *Handlers) failCallError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, callintel.ErrSessionNotFound):
		response.FailWithStatus(c, http.StatusNotFound, "Call session not found", err)
	case errors.Is(err, callintel.ErrNoActiveSession):
		response.FailWithStatus(c, http.StatusConflict, "Call session is not active", err)
	default:
		response.FailWithStatus(c, http.StatusInternalServerError, message, err)
	}
}
