package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/leadpulse-crm/LeadPulse/internal/callintel"
	"github.com/leadpulse-crm/LeadPulse/pkg/config"
	"github.com/leadpulse-crm/LeadPulse/pkg/middleware"
	"gorm.io/gorm"
)

type Handlers struct {
	db      *gorm.DB
	manager *callintel.Manager
}

func NewHandlers(db *gorm.DB, manager *callintel.Manager) *Handlers {
	return &Handlers{
		db:      db,
		manager: manager,
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	r := engine.Group(config.GlobalConfig.APIPrefix)

	// Register Global Singleton DB
	r.Use(middleware.InjectDB(h.db))

	// Register Business Module Routes
	h.registerCallRoutes(r)
	h.registerCatalogRoutes(r)
	h.registerBusinessRoutes(r)
	h.registerSystemRoutes(r)
}

// registerCallRoutes Call Session Module
func (h *Handlers) registerCallRoutes(r *gin.RouterGroup) {
	call := r.Group("call")
	{
		// lifecycle
		call.POST("/start", h.StartCall)
		call.POST("/end", h.EndActiveCall)

		// live feed - must be before /:sessionId
		call.GET("/live/:sessionId", h.LiveCallFeed)

		// attach / history - must be before /:sessionId
		call.GET("/active/:businessId", h.GetActiveCall)
		call.GET("/sessions/:businessId", h.ListCallSessions)

		call.GET("/:sessionId", h.GetCall)
		call.POST("/:sessionId/pause", h.PauseCall)
		call.POST("/:sessionId/resume", h.ResumeCall)
		call.POST("/:sessionId/end", h.EndCall)

		// signal capture
		call.PUT("/:sessionId/signal", h.SetCallSignal)
		call.POST("/:sessionId/objection", h.ToggleCallObjection)
		call.POST("/:sessionId/painpoint", h.AddCallPainPoint)
		call.PUT("/:sessionId/notes", h.SetCallNotes)
		call.PUT("/:sessionId/checklist", h.SetCallChecklistFlag)
		call.PUT("/:sessionId/next-action", h.SetCallNextAction)
		call.PUT("/:sessionId/follow-up", h.SetCallFollowUp)
	}
}

// registerCatalogRoutes Signal Catalog Module (read-only, externally owned)
func (h *Handlers) registerCatalogRoutes(r *gin.RouterGroup) {
	catalog := r.Group("catalog")
	{
		catalog.GET("", h.GetCatalogs)
		catalog.GET("/:kind", h.GetCatalogKind)
	}
}

// registerBusinessRoutes Business Module
func (h *Handlers) registerBusinessRoutes(r *gin.RouterGroup) {
	business := r.Group("business")
	{
		business.POST("", h.CreateBusiness)
		business.GET("", h.ListBusinesses)
		business.GET("/:id", h.GetBusiness)
		business.PUT("/:id", h.UpdateBusiness)
		business.GET("/:id/notes", h.ListBusinessNotes)
	}
}

// registerSystemRoutes System Module
func (h *Handlers) registerSystemRoutes(r *gin.RouterGroup) {
	system := r.Group("system")
	{
		system.GET("/health", h.HealthCheck)
		system.GET("/stats", h.ConversionStats)
	}
}
