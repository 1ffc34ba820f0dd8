package models

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"
)

// setupTestDBWithSilentLogger creates an in-memory test database with a silent
// logger to suppress SQL logs
func setupTestDBWithSilentLogger(t *testing.T, entities ...interface{}) *gorm.DB {
	silentLogger := glog.New(
		log.New(io.Discard, "", log.LstdFlags),
		glog.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  glog.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         silentLogger,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if len(entities) > 0 {
		if err := db.AutoMigrate(entities...); err != nil {
			t.Fatalf("Failed to migrate: %v", err)
		}
	}

	return db
}

// setupCallTestDB migrates every entity the call engine touches
func setupCallTestDB(t *testing.T) *gorm.DB {
	return setupTestDBWithSilentLogger(t,
		&Business{},
		&OutreachNote{},
		&CallSession{},
		&CallObjection{},
		&CallPainPoint{},
		&SignalOption{},
	)
}

// seedTestCatalogs writes the signal catalogs used in tests and drops any
// cached copies so tests never see another test's catalog
func seedTestCatalogs(t *testing.T, db *gorm.DB) {
	options := []SignalOption{
		{Kind: SignalKindBuyerType, Value: "analytical", Label: "Analytical", Sort: 1},
		{Kind: SignalKindBuyerType, Value: "driver", Label: "Driver", Sort: 2},
		{Kind: SignalKindBuyerType, Value: "expressive", Label: "Expressive", Sort: 3},
		{Kind: SignalKindBuyerType, Value: "amiable", Label: "Amiable", Sort: 4},
		{Kind: SignalKindUrgency, Value: "bleeding", Label: "Bleeding", Sort: 1},
		{Kind: SignalKindUrgency, Value: "urgent", Label: "Urgent", Sort: 2},
		{Kind: SignalKindUrgency, Value: "planning", Label: "Planning", Sort: 3},
		{Kind: SignalKindUrgency, Value: "browsing", Label: "Browsing", Sort: 4},
		{Kind: SignalKindAuthority, Value: "sole", Label: "Sole decision maker", Sort: 1},
		{Kind: SignalKindAuthority, Value: "influencer", Label: "Influencer", Sort: 2},
		{Kind: SignalKindAuthority, Value: "gatekeeper", Label: "Gatekeeper", Sort: 3},
		{Kind: SignalKindBudget, Value: "flexible", Label: "Flexible", Sort: 1},
		{Kind: SignalKindBudget, Value: "price_first", Label: "Price first", Sort: 2},
		{Kind: SignalKindBudget, Value: "constrained", Label: "Constrained", Sort: 3},
		{Kind: SignalKindObjection, Value: "price", Label: "Too expensive", Sort: 1},
		{Kind: SignalKindObjection, Value: "timing", Label: "Bad timing", Sort: 2},
		{Kind: SignalKindObjection, Value: "competitor", Label: "Using a competitor", Sort: 3},
		{Kind: SignalKindDisposition, Value: "closed_won", Label: "Closed won", Sort: 1},
		{Kind: SignalKindDisposition, Value: "not_now", Label: "Not now", Sort: 2},
		{Kind: SignalKindDisposition, Value: "no_answer", Label: "No answer", Sort: 3},
	}
	if err := db.Create(&options).Error; err != nil {
		t.Fatalf("Failed to seed catalogs: %v", err)
	}
	for _, kind := range []string{
		SignalKindBuyerType, SignalKindUrgency, SignalKindAuthority,
		SignalKindBudget, SignalKindObjection, SignalKindDisposition,
	} {
		InvalidateCatalog(kind)
	}
}
