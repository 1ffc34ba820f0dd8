package callintel

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"
)

func setupEngineDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Business{},
		&models.OutreachNote{},
		&models.CallSession{},
		&models.CallObjection{},
		&models.CallPainPoint{},
		&models.SignalOption{},
	))

	seedEngineCatalogs(t, db)
	return db
}

func seedEngineCatalogs(t *testing.T, db *gorm.DB) {
	options := []models.SignalOption{
		{Kind: models.SignalKindBuyerType, Value: "analytical", Label: "Analytical", Sort: 1},
		{Kind: models.SignalKindBuyerType, Value: "driver", Label: "Driver", Sort: 2},
		{Kind: models.SignalKindBuyerType, Value: "expressive", Label: "Expressive", Sort: 3},
		{Kind: models.SignalKindBuyerType, Value: "amiable", Label: "Amiable", Sort: 4},
		{Kind: models.SignalKindUrgency, Value: "bleeding", Label: "Bleeding", Sort: 1},
		{Kind: models.SignalKindUrgency, Value: "urgent", Label: "Urgent", Sort: 2},
		{Kind: models.SignalKindUrgency, Value: "planning", Label: "Planning", Sort: 3},
		{Kind: models.SignalKindUrgency, Value: "browsing", Label: "Browsing", Sort: 4},
		{Kind: models.SignalKindAuthority, Value: "sole", Label: "Sole decision maker", Sort: 1},
		{Kind: models.SignalKindAuthority, Value: "influencer", Label: "Influencer", Sort: 2},
		{Kind: models.SignalKindAuthority, Value: "gatekeeper", Label: "Gatekeeper", Sort: 3},
		{Kind: models.SignalKindBudget, Value: "flexible", Label: "Flexible", Sort: 1},
		{Kind: models.SignalKindBudget, Value: "price_first", Label: "Price first", Sort: 2},
		{Kind: models.SignalKindBudget, Value: "constrained", Label: "Constrained", Sort: 3},
		{Kind: models.SignalKindObjection, Value: "price", Label: "Too expensive", Sort: 1},
		{Kind: models.SignalKindObjection, Value: "timing", Label: "Bad timing", Sort: 2},
		{Kind: models.SignalKindObjection, Value: "competitor", Label: "Using a competitor", Sort: 3},
		{Kind: models.SignalKindDisposition, Value: "closed_won", Label: "Closed won", Sort: 1},
		{Kind: models.SignalKindDisposition, Value: "not_now", Label: "Not now", Sort: 2},
		{Kind: models.SignalKindDisposition, Value: "no_answer", Label: "No answer", Sort: 3},
	}
	require.NoError(t, db.Create(&options).Error)
	for _, kind := range []string{
		models.SignalKindBuyerType, models.SignalKindUrgency,
		models.SignalKindAuthority, models.SignalKindBudget,
		models.SignalKindObjection, models.SignalKindDisposition,
	} {
		models.InvalidateCatalog(kind)
	}
}

func createEngineBusiness(t *testing.T, db *gorm.DB, name string) *models.Business {
	business := &models.Business{Name: name, BusinessType: "plumber"}
	require.NoError(t, models.CreateBusiness(db, business))
	return business
}

// fakeTicker is one scheduled callback of the fake clock
type fakeTicker struct {
	interval  time.Duration
	fn        func()
	cancelled bool
}

// fakeClock drives the manager's timer deterministically: Now is a settable
// instant and Advance fires scheduled callbacks as often as real time would
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Schedule(interval time.Duration, fn func()) func() {
	c.mu.Lock()
	ticker := &fakeTicker{interval: interval, fn: fn}
	c.tickers = append(c.tickers, ticker)
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		ticker.cancelled = true
		c.mu.Unlock()
	}
}

// Advance moves the clock forward and fires each active callback once per
// elapsed interval
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	active := make([]*fakeTicker, 0, len(c.tickers))
	for _, ticker := range c.tickers {
		if !ticker.cancelled {
			active = append(active, ticker)
		}
	}
	c.mu.Unlock()

	for _, ticker := range active {
		fires := int(d / ticker.interval)
		for i := 0; i < fires; i++ {
			ticker.fn()
		}
	}
}
