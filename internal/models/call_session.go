package models

import (
	"errors"
	"time"

	gonanoid "github.com/matoous/go-nanoid"
	"gorm.io/gorm"
)

// CallStatus lifecycle state of a call session. Pause is a process-local flag
// on the live timer, never a persisted status.
type CallStatus string

const (
	CallStatusInProgress CallStatus = "in_progress"
	CallStatusCompleted  CallStatus = "completed"
)

var (
	// ErrActiveSessionExists is returned when a business already has an
	// in-progress call session
	ErrActiveSessionExists = errors.New("an in-progress call session already exists for this business")
)

// CallSession is one call attempt against a business. Signal fields
// (buyer type, urgency, authority, budget) hold catalog values and stay empty
// until captured; DealScore stays nil until first computed.
type CallSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	SessionID  string `json:"sessionId" gorm:"uniqueIndex;size:64;not null"`
	BusinessID uint   `json:"businessId" gorm:"index;not null"`

	ContactName string `json:"contactName,omitempty" gorm:"size:128"`
	ContactRole string `json:"contactRole,omitempty" gorm:"size:128"`

	Status CallStatus `json:"status" gorm:"size:20;index"`
	// ActiveBusinessID mirrors BusinessID while the session is in progress and
	// is cleared at completion; its unique index is what enforces one active
	// session per business inside the store.
	ActiveBusinessID *uint `json:"-" gorm:"uniqueIndex"`

	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty" gorm:"default:0"`

	BuyerType string `json:"buyerType,omitempty" gorm:"size:50"`
	Urgency   string `json:"urgency,omitempty" gorm:"size:50"`
	Authority string `json:"authority,omitempty" gorm:"size:50"`
	Budget    string `json:"budget,omitempty" gorm:"size:50"`

	DealScore   *int   `json:"dealScore,omitempty"`
	Disposition string `json:"disposition,omitempty" gorm:"size:50;index"`

	NeedsDemo      bool `json:"needsDemo" gorm:"default:false"`
	NeedsProposal  bool `json:"needsProposal" gorm:"default:false"`
	NeedsCaseStudy bool `json:"needsCaseStudy" gorm:"default:false"`
	NeedsTrial     bool `json:"needsTrial" gorm:"default:false"`

	NextAction   string     `json:"nextAction,omitempty" gorm:"size:500"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
	Notes        string     `json:"notes,omitempty" gorm:"type:text"`
}

func (CallSession) TableName() string {
	return "call_sessions"
}

// CallObjection tracks one objection category per session: at most one row per
// (session, type), toggled between addressed and unaddressed.
type CallObjection struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	SessionID     string `json:"sessionId" gorm:"size:64;not null;uniqueIndex:idx_session_objection"`
	ObjectionType string `json:"objectionType" gorm:"size:50;not null;uniqueIndex:idx_session_objection"`
	Addressed     bool   `json:"addressed" gorm:"default:false"`
}

func (CallObjection) TableName() string {
	return "call_objections"
}

// CallPainPoint is an append-only log entry of a problem the prospect voiced
type CallPainPoint struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	SessionID string `json:"sessionId" gorm:"size:64;index;not null"`
	PainText  string `json:"painText" gorm:"size:1000"`
	Severity  int    `json:"severity" gorm:"default:0"` // 0-10
}

func (CallPainPoint) TableName() string {
	return "call_pain_points"
}

// CreateCallSession inserts a new in-progress session. The caller supplies
// StartedAt; SessionID is generated here. The active-session unique index
// rejects a second in-progress session for the same business.
func CreateCallSession(db *gorm.DB, session *CallSession) error {
	if session.SessionID == "" {
		sid, err := gonanoid.Nanoid()
		if err != nil {
			return err
		}
		session.SessionID = sid
	}
	session.Status = CallStatusInProgress
	businessID := session.BusinessID
	session.ActiveBusinessID = &businessID

	if err := db.Create(session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrActiveSessionExists
		}
		return err
	}
	return nil
}

// GetCallSession fetches a session by its public session ID
func GetCallSession(db *gorm.DB, sessionID string) (*CallSession, error) {
	var session CallSession
	if err := db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetActiveSession returns the single in-progress session for a business, or
// gorm.ErrRecordNotFound when the business has no live call
func GetActiveSession(db *gorm.DB, businessID uint) (*CallSession, error) {
	var session CallSession
	err := db.Where("business_id = ? AND status = ?", businessID, CallStatusInProgress).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListCallSessions returns a business's sessions, most recent first
func ListCallSessions(db *gorm.DB, businessID uint, limit int) ([]CallSession, error) {
	var sessions []CallSession
	query := db.Where("business_id = ?", businessID).Order("started_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}

// UpdateCallSessionFields applies a partial, last-write-wins update
func UpdateCallSessionFields(db *gorm.DB, sessionID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&CallSession{}).Where("session_id = ?", sessionID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CompleteCallSession closes the session: status, endedAt, durationMinutes,
// dealScore and disposition are fixed in one write and the active-session key
// is released.
func CompleteCallSession(db *gorm.DB, sessionID string, endedAt time.Time, durationMinutes, dealScore int, disposition string) error {
	fields := map[string]interface{}{
		"status":             CallStatusCompleted,
		"active_business_id": nil,
		"ended_at":           endedAt,
		"duration_minutes":   durationMinutes,
		"deal_score":         dealScore,
	}
	if disposition != "" {
		fields["disposition"] = disposition
	}
	return UpdateCallSessionFields(db, sessionID, fields)
}

// ToggleObjection creates the (session, type) row unaddressed when missing and
// flips Addressed when present. Two calls in a row restore the original state.
func ToggleObjection(db *gorm.DB, sessionID, objectionType string) (*CallObjection, error) {
	var objection CallObjection
	err := db.Where("session_id = ? AND objection_type = ?", sessionID, objectionType).
		First(&objection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		objection = CallObjection{
			SessionID:     sessionID,
			ObjectionType: objectionType,
			Addressed:     false,
		}
		if err := db.Create(&objection).Error; err != nil {
			return nil, err
		}
		return &objection, nil
	}
	if err != nil {
		return nil, err
	}

	objection.Addressed = !objection.Addressed
	if err := db.Model(&objection).Update("addressed", objection.Addressed).Error; err != nil {
		return nil, err
	}
	return &objection, nil
}

// ListObjections returns a session's objections in creation order
func ListObjections(db *gorm.DB, sessionID string) ([]CallObjection, error) {
	var objections []CallObjection
	err := db.Where("session_id = ?", sessionID).Order("id ASC").Find(&objections).Error
	return objections, err
}

// AddPainPoint appends a pain point; duplicates are allowed and nothing is
// ever edited or deleted
func AddPainPoint(db *gorm.DB, sessionID, painText string, severity int) (*CallPainPoint, error) {
	painPoint := CallPainPoint{
		SessionID: sessionID,
		PainText:  painText,
		Severity:  severity,
	}
	if err := db.Create(&painPoint).Error; err != nil {
		return nil, err
	}
	return &painPoint, nil
}

// ListPainPoints returns a session's pain points in capture order
func ListPainPoints(db *gorm.DB, sessionID string) ([]CallPainPoint, error) {
	var painPoints []CallPainPoint
	err := db.Where("session_id = ?", sessionID).Order("id ASC").Find(&painPoints).Error
	return painPoints, err
}

// DispositionStat is one row of the conversion statistics
type DispositionStat struct {
	Disposition  string  `json:"disposition"`
	Count        int64   `json:"count"`
	AvgDealScore float64 `json:"avgDealScore"`
}

// GetDispositionStats aggregates completed sessions per disposition; sessions
// ended without a disposition are grouped under the empty value
func GetDispositionStats(db *gorm.DB) ([]DispositionStat, error) {
	var stats []DispositionStat
	err := db.Model(&CallSession{}).
		Where("status = ?", CallStatusCompleted).
		Select("disposition, COUNT(*) as count, COALESCE(AVG(deal_score), 0) as avg_deal_score").
		Group("disposition").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

// ListStaleSessions returns in-progress sessions started before the cutoff,
// candidates for the stale-session sweep
func ListStaleSessions(db *gorm.DB, before time.Time) ([]CallSession, error) {
	var sessions []CallSession
	err := db.Where("status = ? AND started_at < ?", CallStatusInProgress, before).
		Find(&sessions).Error
	return sessions, err
}
