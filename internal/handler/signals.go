package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadpulse-crm/LeadPulse/internal/callintel"
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/response"
	"gorm.io/gorm"
)

// SetSignalRequest Set prospect signal request
type SetSignalRequest struct {
	Kind  string `json:"kind" binding:"required"`  // buyer_type, urgency, authority, budget
	Value string `json:"value" binding:"required"` // catalog value
}

// ToggleObjectionRequest Toggle objection request
type ToggleObjectionRequest struct {
	ObjectionType string `json:"objectionType" binding:"required"`
}

// AddPainPointRequest Add pain point request
type AddPainPointRequest struct {
	PainText string `json:"painText" binding:"required"`
	Severity int    `json:"severity"` // 0-10, optional
}

// SetNotesRequest Overwrite session notes request
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// SetChecklistRequest Set checklist flag request
type SetChecklistRequest struct {
	Name  string `json:"name" binding:"required"` // demo, proposal, case_study, trial
	Value bool   `json:"value"`
}

// SetNextActionRequest Set next action request
type SetNextActionRequest struct {
	NextAction string `json:"nextAction"`
}

// SetFollowUpRequest Set follow-up date request; empty date clears it
type SetFollowUpRequest struct {
	FollowUpDate string `json:"followUpDate"` // YYYY-MM-DD
}

// SetCallSignal overwrites one prospect signal (last-write-wins)
func (h *Handlers) SetCallSignal(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req SetSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	if err := callintel.SetSignal(h.db, sessionID, req.Kind, req.Value); err != nil {
		h.failSignalError(c, err, "Failed to set signal")
		return
	}
	response.Success(c, "signal captured", nil)
}

// ToggleCallObjection flips the addressed state of one objection type
func (h *Handlers) ToggleCallObjection(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req ToggleObjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	objection, err := callintel.ToggleObjection(h.db, sessionID, req.ObjectionType)
	if err != nil {
		h.failSignalError(c, err, "Failed to toggle objection")
		return
	}
	response.Success(c, "objection toggled", objection)
}

// AddCallPainPoint appends a pain point to the session
func (h *Handlers) AddCallPainPoint(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req AddPainPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	painPoint, err := callintel.AddPainPoint(h.db, sessionID, req.PainText, req.Severity)
	if err != nil {
		h.failSignalError(c, err, "Failed to add pain point")
		return
	}
	response.Success(c, "pain point added", painPoint)
}

// SetCallNotes overwrites the session notes
func (h *Handlers) SetCallNotes(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	if err := callintel.SetNotes(h.db, sessionID, req.Notes); err != nil {
		h.failSignalError(c, err, "Failed to set notes")
		return
	}
	response.Success(c, "notes saved", nil)
}

// SetCallChecklistFlag sets one of the needs-demo/proposal/case-study/trial flags
func (h *Handlers) SetCallChecklistFlag(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req SetChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	if err := callintel.SetChecklistFlag(h.db, sessionID, req.Name, req.Value); err != nil {
		h.failSignalError(c, err, "Failed to set checklist flag")
		return
	}
	response.Success(c, "checklist updated", nil)
}

// SetCallNextAction overwrites the free-text next action
func (h *Handlers) SetCallNextAction(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req SetNextActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	if err := callintel.SetNextAction(h.db, sessionID, req.NextAction); err != nil {
		h.failSignalError(c, err, "Failed to set next action")
		return
	}
	response.Success(c, "next action saved", nil)
}

// SetCallFollowUp sets or clears the follow-up date
func (h *Handlers) SetCallFollowUp(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req SetFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	var followUpDate *time.Time
	if strings.TrimSpace(req.FollowUpDate) != "" {
		parsed, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			response.Fail(c, "Invalid follow-up date, expected YYYY-MM-DD", err)
			return
		}
		followUpDate = &parsed
	}

	if err := callintel.SetFollowUpDate(h.db, sessionID, followUpDate); err != nil {
		h.failSignalError(c, err, "Failed to set follow-up date")
		return
	}
	response.Success(c, "follow-up date saved", nil)
}

func (h *Handlers) failSignalError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.FailWithStatus(c, http.StatusNotFound, "Call session not found", err)
	case errors.Is(err, models.ErrUnknownSignalValue),
		errors.Is(err, callintel.ErrUnknownSignalKind),
		errors.Is(err, callintel.ErrUnknownChecklistFlag),
		errors.Is(err, callintel.ErrSeverityOutOfRange):
		response.Fail(c, message, err)
	default:
		response.FailWithStatus(c, http.StatusInternalServerError, message, err)
	}
}
