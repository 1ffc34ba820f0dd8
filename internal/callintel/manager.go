package callintel

import (
	"errors"
	"sync"
	"time"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"github.com/leadpulse-crm/LeadPulse/pkg/metrics"
	"github.com/leadpulse-crm/LeadPulse/pkg/notification"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrBusinessNotFound is returned by Start when the referenced business
	// does not exist; no session is created
	ErrBusinessNotFound = errors.New("business not found")
	// ErrSessionNotFound is returned for mutations against an unknown session
	ErrSessionNotFound = errors.New("call session not found")
	// ErrNoActiveSession is returned by pause/resume/attach when the business
	// has no in-progress call
	ErrNoActiveSession = errors.New("no active call session")
)

// liveCall is the process-local timer state of one in-progress session. The
// elapsed counter and the running (paused) flag are never persisted; after an
// interruption they are reconstructed from StartedAt.
type liveCall struct {
	sessionID      string
	businessID     uint
	startedAt      time.Time
	elapsedSeconds int64
	running        bool
	cancel         func()
}

// ManagerOptions configures a Manager; zero values select defaults
type ManagerOptions struct {
	Clock        Clock
	TickInterval time.Duration
	Monitor      *metrics.Monitor
	Webhook      *notification.WebhookDispatcher
}

// Manager orchestrates the call-session lifecycle: start, pause/resume, the
// live elapsed counter, resume-after-interruption and end with scoring and
// post-call sync.
type Manager struct {
	db       *gorm.DB
	clock    Clock
	interval time.Duration
	monitor  *metrics.Monitor
	webhook  *notification.WebhookDispatcher

	mu         sync.Mutex
	byBusiness map[uint]*liveCall
	bySession  map[string]*liveCall
}

// NewManager creates a Manager bound to the given database
func NewManager(db *gorm.DB, opts *ManagerOptions) *Manager {
	if opts == nil {
		opts = &ManagerOptions{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewRealClock()
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = metrics.GetGlobalMonitor()
	}
	return &Manager{
		db:         db,
		clock:      clock,
		interval:   interval,
		monitor:    monitor,
		webhook:    opts.Webhook,
		byBusiness: make(map[uint]*liveCall),
		bySession:  make(map[string]*liveCall),
	}
}

// Start opens a new call session for a business. It rejects when the business
// is unknown or already has an in-progress session; the store's unique
// active-session index backs the check against concurrent starts.
func (m *Manager) Start(businessID uint, contactName, contactRole string) (*models.CallSession, error) {
	if _, err := models.GetBusinessByID(m.db, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if _, err := models.GetActiveSession(m.db, businessID); err == nil {
		return nil, models.ErrActiveSessionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := &models.CallSession{
		BusinessID:  businessID,
		ContactName: contactName,
		ContactRole: contactRole,
		StartedAt:   m.clock.Now(),
	}
	if err := models.CreateCallSession(m.db, session); err != nil {
		return nil, err
	}

	m.register(session, 0)
	m.monitor.CallStarted()
	logger.Info("call session started",
		zap.String("sessionId", session.SessionID),
		zap.Uint("businessId", businessID))
	return session, nil
}

// Attach reconnects to a business's in-progress session after a reload or
// crash: elapsed time is reconstructed from StartedAt and ticking resumes.
// Returns ErrNoActiveSession when the business has no live call.
func (m *Manager) Attach(businessID uint) (*models.CallSession, int64, error) {
	m.mu.Lock()
	if handle, ok := m.byBusiness[businessID]; ok {
		elapsed := handle.elapsedSeconds
		sessionID := handle.sessionID
		m.mu.Unlock()
		session, err := models.GetCallSession(m.db, sessionID)
		if err != nil {
			return nil, 0, err
		}
		return session, elapsed, nil
	}
	m.mu.Unlock()

	session, err := models.GetActiveSession(m.db, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNoActiveSession
		}
		return nil, 0, err
	}

	elapsed := int64(m.clock.Now().Sub(session.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	m.register(session, elapsed)
	logger.Info("call session reattached",
		zap.String("sessionId", session.SessionID),
		zap.Int64("elapsedSeconds", elapsed))
	return session, elapsed, nil
}

// Pause stops the elapsed counter without touching the persisted status
func (m *Manager) Pause(sessionID string) error {
	return m.setRunning(sessionID, false)
}

// Resume restarts the elapsed counter after a pause
func (m *Manager) Resume(sessionID string) error {
	return m.setRunning(sessionID, true)
}

// End closes a session: the tick is cancelled, durationMinutes and dealScore
// are computed and persisted, Post-Call Sync runs, and the local handle is
// released. Ending an already-completed session is a no-op.
func (m *Manager) End(sessionID, disposition string) (*models.CallSession, error) {
	session, err := models.GetCallSession(m.db, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status == models.CallStatusCompleted {
		return session, nil
	}

	if disposition != "" {
		if err := models.ValidateSignalValue(m.db, models.SignalKindDisposition, disposition); err != nil {
			return nil, err
		}
	}

	now := m.clock.Now()
	elapsed := m.release(sessionID, session)

	objections, err := models.ListObjections(m.db, sessionID)
	if err != nil {
		return nil, err
	}
	painPoints, err := models.ListPainPoints(m.db, sessionID)
	if err != nil {
		return nil, err
	}

	if disposition != "" {
		session.Disposition = disposition
	}
	durationMinutes := int((elapsed + 59) / 60)
	dealScore := Score(session, objections, painPoints)

	if err := models.CompleteCallSession(m.db, sessionID, now, durationMinutes, dealScore, disposition); err != nil {
		return nil, err
	}
	session.Status = models.CallStatusCompleted
	session.EndedAt = &now
	session.DurationMinutes = durationMinutes
	session.DealScore = &dealScore

	// Sync and webhook failures are logged, not returned: the session is
	// already completed and must not be reported as failed.
	if err := PostCallSync(m.db, session, objections, painPoints, now); err != nil {
		logger.Error("post-call sync failed",
			zap.String("sessionId", sessionID), zap.Error(err))
	}
	m.dispatchWebhook(session)
	m.monitor.CallEnded(session.Disposition, dealScore, durationMinutes)

	logger.Info("call session ended",
		zap.String("sessionId", sessionID),
		zap.Int("dealScore", dealScore),
		zap.Int("durationMinutes", durationMinutes),
		zap.String("disposition", session.Disposition))
	return session, nil
}

// EndActive ends the business's in-progress session. With no active session
// it is a no-op, not an error.
func (m *Manager) EndActive(businessID uint, disposition string) (*models.CallSession, error) {
	session, err := models.GetActiveSession(m.db, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.End(session.SessionID, disposition)
}

// Elapsed returns the live elapsed seconds for a session when it has a local
// timer handle
func (m *Manager) Elapsed(sessionID string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	handle, ok := m.bySession[sessionID]
	if !ok {
		return 0, false
	}
	return handle.elapsedSeconds, true
}

// LiveSnapshot is the mid-call view served to the UI: current elapsed time,
// pause state and the freshly re-derived score and tips.
type LiveSnapshot struct {
	SessionID      string   `json:"sessionId"`
	Status         string   `json:"status"`
	ElapsedSeconds int64    `json:"elapsedSeconds"`
	Running        bool     `json:"running"`
	DealScore      int      `json:"dealScore"`
	Tips           []string `json:"tips"`
}

// Snapshot re-derives score and tips for a session without side effects
func (m *Manager) Snapshot(sessionID string) (*LiveSnapshot, error) {
	session, err := models.GetCallSession(m.db, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	objections, err := models.ListObjections(m.db, sessionID)
	if err != nil {
		return nil, err
	}
	painPoints, err := models.ListPainPoints(m.db, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := &LiveSnapshot{
		SessionID: sessionID,
		Status:    string(session.Status),
		DealScore: Score(session, objections, painPoints),
		Tips:      Tips(session, objections),
	}
	if session.Status == models.CallStatusCompleted && session.DealScore != nil {
		snapshot.DealScore = *session.DealScore
	}

	m.mu.Lock()
	if handle, ok := m.bySession[sessionID]; ok {
		snapshot.ElapsedSeconds = handle.elapsedSeconds
		snapshot.Running = handle.running
	} else if session.Status == models.CallStatusCompleted {
		snapshot.ElapsedSeconds = int64(session.DurationMinutes) * 60
	}
	m.mu.Unlock()
	return snapshot, nil
}

// Shutdown cancels every live tick; sessions stay in_progress for later
// reattachment
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, handle := range m.bySession {
		handle.cancel()
	}
	m.byBusiness = make(map[uint]*liveCall)
	m.bySession = make(map[string]*liveCall)
}

func (m *Manager) register(session *models.CallSession, elapsed int64) {
	handle := &liveCall{
		sessionID:      session.SessionID,
		businessID:     session.BusinessID,
		startedAt:      session.StartedAt,
		elapsedSeconds: elapsed,
		running:        true,
	}
	tickSeconds := int64(m.interval / time.Second)
	if tickSeconds < 1 {
		tickSeconds = 1
	}
	handle.cancel = m.clock.Schedule(m.interval, func() {
		m.mu.Lock()
		if handle.running {
			handle.elapsedSeconds += tickSeconds
		}
		m.mu.Unlock()
	})

	m.mu.Lock()
	if _, ok := m.bySession[session.SessionID]; ok {
		// lost an attach race; keep the established handle
		m.mu.Unlock()
		handle.cancel()
		return
	}
	m.byBusiness[session.BusinessID] = handle
	m.bySession[session.SessionID] = handle
	m.mu.Unlock()
}

func (m *Manager) setRunning(sessionID string, running bool) error {
	m.mu.Lock()
	handle, ok := m.bySession[sessionID]
	if ok {
		handle.running = running
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	// No local handle: reattach if the session is still live
	session, err := models.GetCallSession(m.db, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	if session.Status != models.CallStatusInProgress {
		return ErrNoActiveSession
	}
	if _, _, err := m.Attach(session.BusinessID); err != nil {
		return err
	}
	return m.setRunning(sessionID, running)
}

// release cancels the local timer and returns the elapsed seconds, falling
// back to wall-clock reconstruction when no handle survived (end after crash
// without a prior attach)
func (m *Manager) release(sessionID string, session *models.CallSession) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if handle, ok := m.bySession[sessionID]; ok {
		handle.cancel()
		delete(m.bySession, sessionID)
		delete(m.byBusiness, handle.businessID)
		return handle.elapsedSeconds
	}
	elapsed := int64(m.clock.Now().Sub(session.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

func (m *Manager) dispatchWebhook(session *models.CallSession) {
	if !m.webhook.Enabled() {
		return
	}
	business, err := models.GetBusinessByID(m.db, session.BusinessID)
	businessName := ""
	if err == nil {
		businessName = business.Name
	}
	objections, _ := models.ListObjections(m.db, session.SessionID)
	painPoints, _ := models.ListPainPoints(m.db, session.SessionID)

	score := 0
	if session.DealScore != nil {
		score = *session.DealScore
	}
	event := &notification.CallEndedEvent{
		SessionID:       session.SessionID,
		BusinessID:      session.BusinessID,
		BusinessName:    businessName,
		ContactName:     session.ContactName,
		Disposition:     session.Disposition,
		DealScore:       score,
		DurationMinutes: session.DurationMinutes,
		EndedAt:         *session.EndedAt,
		FollowUpDate:    session.FollowUpDate,
		Summary:         BuildCallSummary(m.db, session, objections, painPoints),
	}
	go func() {
		if err := m.webhook.DispatchCallEnded(event); err != nil {
			logger.Warn("call-ended webhook failed",
				zap.String("sessionId", event.SessionID), zap.Error(err))
		}
	}()
}
