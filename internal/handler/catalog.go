package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/response"
)

var catalogKinds = []string{
	models.SignalKindBuyerType,
	models.SignalKindUrgency,
	models.SignalKindAuthority,
	models.SignalKindBudget,
	models.SignalKindObjection,
	models.SignalKindDisposition,
}

// GetCatalogs returns every signal catalog keyed by kind, so clients can
// populate their pickers with a single request
func (h *Handlers) GetCatalogs(c *gin.Context) {
	catalogs := make(map[string][]models.SignalOption, len(catalogKinds))
	for _, kind := range catalogKinds {
		options, err := models.GetCatalog(h.db, kind)
		if err != nil {
			response.FailWithStatus(c, http.StatusInternalServerError, "Failed to load catalogs", err)
			return
		}
		catalogs[kind] = options
	}
	response.Success(c, "ok", catalogs)
}

// GetCatalogKind returns the options for a single signal kind
func (h *Handlers) GetCatalogKind(c *gin.Context) {
	kind := c.Param("kind")

	known := false
	for _, k := range catalogKinds {
		if k == kind {
			known = true
			break
		}
	}
	if !known {
		response.Fail(c, "Unknown catalog kind", kind)
		return
	}

	options, err := models.GetCatalog(h.db, kind)
	if err != nil {
		response.FailWithStatus(c, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	response.Success(c, "ok", options)
}
