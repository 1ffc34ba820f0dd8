package config

import (
	"log"
	"os"

	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"github.com/leadpulse-crm/LeadPulse/pkg/utils"
	"github.com/spf13/cast"
)

// Config System CommonConfig
type Config struct {
	ServerName string `env:"SERVER_NAME"`
	ServerDesc string `env:"SERVER_DESC"`
	DBDriver   string `env:"DB_DRIVER"`
	DSN        string `env:"DSN"`
	Addr       string `env:"ADDR"`
	Mode       string `env:"MODE"`
	Log        logger.LogConfig

	APIPrefix     string `env:"API_PREFIX"`
	MonitorPrefix string `env:"MONITOR_PREFIX"`

	// Live call timer
	TickInterval int `env:"TICK_INTERVAL_SECONDS"` // seconds per tick, default 1

	// Call-ended webhook (optional, disabled when empty)
	CallWebhookURL string `env:"CALL_WEBHOOK_URL"`

	// Scheduled tasks
	FollowUpSchedule  string `env:"FOLLOW_UP_SCHEDULE"`  // cron spec for follow-up reminders
	StaleSessionHours int    `env:"STALE_SESSION_HOURS"` // sessions in_progress longer than this are reported

	// Catalog cache TTL in seconds
	CatalogCacheTTL int `env:"CATALOG_CACHE_TTL"`
}

var GlobalConfig *Config

func Load() error {
	// 1. Load the environment-specific .env file; missing files are not fatal,
	// every key below has a default.
	env := os.Getenv("APP_ENV")
	if err := utils.LoadEnv(env); err != nil {
		log.Printf("Note: .env file not found or failed to load: %v (using default values)", err)
	}

	// 2. Build the global configuration
	GlobalConfig = &Config{
		ServerName: getStringOrDefault("SERVER_NAME", "LeadPulse"),
		ServerDesc: getStringOrDefault("SERVER_DESC", "lead scanning and call intelligence"),
		DBDriver:   getStringOrDefault("DB_DRIVER", "sqlite"),
		DSN:        getStringOrDefault("DSN", "./leadpulse.db"),
		Addr:       getStringOrDefault("ADDR", ":7076"),
		Mode:       getStringOrDefault("MODE", "development"),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", "./logs/app.log"),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		APIPrefix:         getStringOrDefault("API_PREFIX", "/api"),
		MonitorPrefix:     getStringOrDefault("MONITOR_PREFIX", "/metrics"),
		TickInterval:      getIntOrDefault("TICK_INTERVAL_SECONDS", 1),
		CallWebhookURL:    getStringOrDefault("CALL_WEBHOOK_URL", ""),
		FollowUpSchedule:  getStringOrDefault("FOLLOW_UP_SCHEDULE", "0 9 * * *"),
		StaleSessionHours: getIntOrDefault("STALE_SESSION_HOURS", 24),
		CatalogCacheTTL:   getIntOrDefault("CATALOG_CACHE_TTL", 300),
	}
	return nil
}

func getStringOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		return cast.ToInt(v)
	}
	return def
}

func getBoolOrDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return cast.ToBool(v)
	}
	return def
}
