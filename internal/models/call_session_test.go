package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestBusiness(t *testing.T, db *gorm.DB, name string) *Business {
	business := &Business{Name: name, BusinessType: "plumber", Phone: "555-0101"}
	require.NoError(t, CreateBusiness(db, business))
	return business
}

func TestCreateCallSession(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	session := &CallSession{BusinessID: business.ID, StartedAt: time.Now(), ContactName: "Pat"}
	require.NoError(t, CreateCallSession(db, session))

	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, CallStatusInProgress, session.Status)
	require.NotNil(t, session.ActiveBusinessID)
	assert.Equal(t, business.ID, *session.ActiveBusinessID)
	assert.Nil(t, session.DealScore)

	fetched, err := GetCallSession(db, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, business.ID, fetched.BusinessID)
	assert.Equal(t, "Pat", fetched.ContactName)
}

func TestCreateCallSession_SecondActiveRejected(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	first := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
	require.NoError(t, CreateCallSession(db, first))

	second := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
	err := CreateCallSession(db, second)
	assert.ErrorIs(t, err, ErrActiveSessionExists)

	// A different business is unaffected
	other := createTestBusiness(t, db, "Beta Roofing")
	third := &CallSession{BusinessID: other.ID, StartedAt: time.Now()}
	assert.NoError(t, CreateCallSession(db, third))
}

func TestCompleteCallSession_FreesActiveSlot(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	session := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
	require.NoError(t, CreateCallSession(db, session))

	endedAt := time.Now()
	require.NoError(t, CompleteCallSession(db, session.SessionID, endedAt, 3, 65, "closed_won"))

	fetched, err := GetCallSession(db, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, CallStatusCompleted, fetched.Status)
	assert.Nil(t, fetched.ActiveBusinessID)
	assert.Equal(t, 3, fetched.DurationMinutes)
	require.NotNil(t, fetched.DealScore)
	assert.Equal(t, 65, *fetched.DealScore)
	assert.Equal(t, "closed_won", fetched.Disposition)

	// The business can be called again
	next := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
	assert.NoError(t, CreateCallSession(db, next))
}

func TestGetActiveSession(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	_, err := GetActiveSession(db, business.ID)
	assert.Error(t, err)

	session := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
	require.NoError(t, CreateCallSession(db, session))

	active, err := GetActiveSession(db, business.ID)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, active.SessionID)

	require.NoError(t, CompleteCallSession(db, session.SessionID, time.Now(), 1, 50, ""))
	_, err = GetActiveSession(db, business.ID)
	assert.Error(t, err)
}

func TestToggleObjection(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")
	session := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
	require.NoError(t, CreateCallSession(db, session))

	// First toggle creates an unaddressed row
	objection, err := ToggleObjection(db, session.SessionID, "price")
	require.NoError(t, err)
	assert.False(t, objection.Addressed)

	// Second toggle flips it, no new row
	objection, err = ToggleObjection(db, session.SessionID, "price")
	require.NoError(t, err)
	assert.True(t, objection.Addressed)

	// Third restores the original state
	objection, err = ToggleObjection(db, session.SessionID, "price")
	require.NoError(t, err)
	assert.False(t, objection.Addressed)

	objections, err := ListObjections(db, session.SessionID)
	require.NoError(t, err)
	assert.Len(t, objections, 1)
}

func TestAddPainPoint(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")
	session := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
	require.NoError(t, CreateCallSession(db, session))

	first, err := AddPainPoint(db, session.SessionID, "losing leads after hours", 8)
	require.NoError(t, err)
	assert.Equal(t, 8, first.Severity)

	_, err = AddPainPoint(db, session.SessionID, "slow quoting", 3)
	require.NoError(t, err)

	painPoints, err := ListPainPoints(db, session.SessionID)
	require.NoError(t, err)
	require.Len(t, painPoints, 2)
	assert.Equal(t, "losing leads after hours", painPoints[0].PainText)
}

func TestListCallSessions(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	for i := 0; i < 3; i++ {
		session := &CallSession{
			BusinessID: business.ID,
			StartedAt:  time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, CreateCallSession(db, session))
		require.NoError(t, CompleteCallSession(db, session.SessionID, time.Now(), 1, 50, ""))
	}

	sessions, err := ListCallSessions(db, business.ID, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// Newest first
	assert.True(t, !sessions[0].StartedAt.Before(sessions[1].StartedAt))
}

func TestListStaleSessions(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	old := &CallSession{BusinessID: business.ID, StartedAt: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, CreateCallSession(db, old))

	other := createTestBusiness(t, db, "Beta Roofing")
	fresh := &CallSession{BusinessID: other.ID, StartedAt: time.Now()}
	require.NoError(t, CreateCallSession(db, fresh))

	stale, err := ListStaleSessions(db, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.SessionID, stale[0].SessionID)
}

func TestGetDispositionStats(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	scores := map[string][]int{
		"closed_won": {80, 90},
		"not_now":    {40},
	}
	for disposition, values := range scores {
		for _, score := range values {
			session := &CallSession{BusinessID: business.ID, StartedAt: time.Now()}
			require.NoError(t, CreateCallSession(db, session))
			require.NoError(t, CompleteCallSession(db, session.SessionID, time.Now(), 1, score, disposition))
		}
	}

	stats, err := GetDispositionStats(db)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byDisposition := map[string]DispositionStat{}
	for _, s := range stats {
		byDisposition[s.Disposition] = s
	}
	assert.Equal(t, int64(2), byDisposition["closed_won"].Count)
	assert.InDelta(t, 85.0, byDisposition["closed_won"].AvgDealScore, 0.01)
	assert.Equal(t, int64(1), byDisposition["not_now"].Count)
}
