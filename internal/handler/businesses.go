package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/response"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

type CreateBusinessRequest struct {
	Name         string `json:"name" binding:"required"`
	BusinessType string `json:"businessType"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	Address      string `json:"address"`
	ContactName  string `json:"contactName"`
}

type UpdateBusinessRequest struct {
	Name         string `json:"name"`
	BusinessType string `json:"businessType"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	Address      string `json:"address"`
	ContactName  string `json:"contactName"`
}

// CreateBusiness registers a lead so call sessions can be opened against it
func (h *Handlers) CreateBusiness(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request parameters", err)
		return
	}

	business := models.Business{
		Name:         req.Name,
		BusinessType: req.BusinessType,
		Phone:        req.Phone,
		Website:      req.Website,
		Address:      req.Address,
		ContactName:  req.ContactName,
	}
	if err := models.CreateBusiness(h.db, &business); err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to create business", err)
		return
	}
	response.Success(c, "business created", business)
}

// ListBusinesses lists leads, optionally filtered by type. Businesses never
// contacted sort last so the call queue surfaces fresh work first.
func (h *Handlers) ListBusinesses(c *gin.Context) {
	businessType := c.Query("type")
	limit := cast.ToInt(c.DefaultQuery("limit", "50"))

	businesses, err := models.ListBusinesses(h.db, businessType, limit)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to list businesses", err)
		return
	}
	response.Success(c, "ok", businesses)
}

// GetBusiness fetches one lead by ID
func (h *Handlers) GetBusiness(c *gin.Context) {
	id := cast.ToUint(c.Param("id"))
	business, err := models.GetBusinessByID(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, http.StatusNotFound, "Business not found", err)
			return
		}
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to get business", err)
		return
	}
	response.Success(c, "ok", business)
}

// UpdateBusiness applies a partial update to the lead's contact fields.
// Outreach state (last contacted, disposition) is owned by post-call sync and
// not writable here.
func (h *Handlers) UpdateBusiness(c *gin.Context) {
	id := cast.ToUint(c.Param("id"))
	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request parameters", err)
		return
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.BusinessType != "" {
		fields["business_type"] = req.BusinessType
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Website != "" {
		fields["website"] = req.Website
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.ContactName != "" {
		fields["contact_name"] = req.ContactName
	}
	if len(fields) == 0 {
		response.Fail(c, "No fields to update", nil)
		return
	}

	result := h.db.Model(&models.Business{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to update business", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		response.FailWithStatus(c, http.StatusNotFound, "Business not found", gorm.ErrRecordNotFound)
		return
	}

	business, err := models.GetBusinessByID(h.db, id)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to get business", err)
		return
	}
	response.Success(c, "business updated", business)
}

// ListBusinessNotes returns the outreach log for a lead, newest first
func (h *Handlers) ListBusinessNotes(c *gin.Context) {
	id := cast.ToUint(c.Param("id"))
	if _, err := models.GetBusinessByID(h.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, http.StatusNotFound, "Business not found", err)
			return
		}
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to get business", err)
		return
	}

	limit := cast.ToInt(c.DefaultQuery("limit", "50"))
	notes, err := models.ListOutreachNotes(h.db, id, limit)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to list outreach notes", err)
		return
	}
	response.Success(c, "ok", notes)
}
