package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadpulse-crm/LeadPulse/cmd/bootstrap"
	"github.com/leadpulse-crm/LeadPulse/internal/callintel"
	handlers "github.com/leadpulse-crm/LeadPulse/internal/handler"
	"github.com/leadpulse-crm/LeadPulse/internal/task"
	"github.com/leadpulse-crm/LeadPulse/pkg/cache"
	"github.com/leadpulse-crm/LeadPulse/pkg/config"
	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"github.com/leadpulse-crm/LeadPulse/pkg/metrics"
	"github.com/leadpulse-crm/LeadPulse/pkg/middleware"
	"github.com/leadpulse-crm/LeadPulse/pkg/notification"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LeadPulseApp struct {
	db       *gorm.DB
	manager  *callintel.Manager
	handlers *handlers.Handlers
}

func NewLeadPulseApp(db *gorm.DB, manager *callintel.Manager) *LeadPulseApp {
	return &LeadPulseApp{
		db:       db,
		manager:  manager,
		handlers: handlers.NewHandlers(db, manager),
	}
}

func (app *LeadPulseApp) RegisterRoutes(r *gin.Engine) {
	// Register system routes (with /api prefix)
	app.handlers.Register(r)
}

func main() {
	// 1. Parse Command Line Parameters
	mode := flag.String("mode", "", "running environment (development, test, production)")
	initSQL := flag.String("init-sql", "", "path to database init .sql script (optional)")
	flag.Parse()

	// 2. Set Environment Variables
	if *mode != "" {
		os.Setenv("APP_ENV", *mode)
	}

	// 3. Load Global Configuration
	if err := config.Load(); err != nil {
		panic("config load failed: " + err.Error())
	}

	// 4. Load Log Configuration
	err := logger.Init(&config.GlobalConfig.Log, config.GlobalConfig.Mode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("checked config -- addr: ", zap.String("addr", config.GlobalConfig.Addr))
	logger.Info("checked config -- db-driver: ",
		zap.String("db-driver", config.GlobalConfig.DBDriver),
		zap.String("dsn", config.GlobalConfig.DSN))
	logger.Info("checked config -- mode: ", zap.String("mode", config.GlobalConfig.Mode))

	// 5. Load Global Cache
	if err := cache.InitGlobalCache(cache.Config{
		DefaultTTL:      time.Duration(config.GlobalConfig.CatalogCacheTTL) * time.Second,
		CleanupInterval: 5 * time.Minute,
		LRUSize:         256,
	}); err != nil {
		logger.Error("failed to initialize cache", zap.Error(err))
		logger.Info("falling back to default local cache")
	}

	// 6. Load Data Source
	db, err := bootstrap.SetupDatabase(os.Stdout, &bootstrap.Options{
		InitSQLPath:  *initSQL, // Can be specified via --init-sql
		AutoMigrate:  true,
		SeedCatalogs: true,
	})
	if err != nil {
		logger.Error("database setup failed", zap.Error(err))
		return
	}

	// 7. Initialize Monitoring System
	monitor := metrics.NewMonitor()
	metrics.SetGlobalMonitor(monitor)

	// 8. Call-ended webhook (disabled when CALL_WEBHOOK_URL is empty)
	webhook := notification.NewWebhookDispatcher(config.GlobalConfig.CallWebhookURL)

	// 9. Call Session Manager
	manager := callintel.NewManager(db, &callintel.ManagerOptions{
		TickInterval: time.Duration(config.GlobalConfig.TickInterval) * time.Second,
		Monitor:      monitor,
		Webhook:      webhook,
	})
	defer manager.Shutdown()

	// 10. New App
	app := NewLeadPulseApp(db, manager)

	// 11. Start Timed Tasks
	task.StartAll(db, manager)

	// 12. Initialize Gin Routing
	if config.GlobalConfig.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()        // Use gin.New() instead of gin.Default() to avoid automatic redirects
	r.Use(gin.Recovery()) // Manually add Recovery middleware

	// Disable automatic redirects to avoid CORS issues caused by 307 redirects
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	// 13. use middleware
	r.Use(metrics.MonitorMiddleware(monitor))
	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(zap.L()))

	// 14. Register Routes
	app.RegisterRoutes(r)

	// 15. Register Metrics Monitor Route: /api/metrics
	fullMonitorPrefix := config.GlobalConfig.APIPrefix + config.GlobalConfig.MonitorPrefix
	r.GET(fullMonitorPrefix, monitor.Handler())
	logger.Info("Metrics monitor route registered", zap.String("prefix", fullMonitorPrefix))

	// 16. Start HTTP Server
	httpServer := &http.Server{
		Addr:           config.GlobalConfig.Addr,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", config.GlobalConfig.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server run failed", zap.Error(err))
		}
	}()

	// 17. Graceful Shutdown: in-progress sessions stay reattachable after restart
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}
