package callintel

import (
	"testing"
	"time"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCallSync(t *testing.T) {
	manager, clock, db := newTestManager(t)
	business := createEngineBusiness(t, db, "Acme Plumbing")
	session, err := manager.Start(business.ID, "", "")
	require.NoError(t, err)

	followUp := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, SetFollowUpDate(db, session.SessionID, &followUp))

	clock.Advance(90 * time.Second)
	ended, err := manager.End(session.SessionID, "not_now")
	require.NoError(t, err)

	// Exactly one business update carrying contact time, follow-up and disposition
	updated, err := models.GetBusinessByID(db, business.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastContactedAt)
	require.NotNil(t, updated.FollowUpDate)
	assert.Equal(t, followUp.Format("2006-01-02"), updated.FollowUpDate.Format("2006-01-02"))
	assert.Equal(t, "not_now", updated.LastDisposition)

	// Exactly one appended note carrying the final score
	notes, err := models.ListOutreachNotes(db, business.ID, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "call_summary", notes[0].Source)
	require.NotNil(t, notes[0].DealScore)
	assert.Equal(t, *ended.DealScore, *notes[0].DealScore)
	assert.Contains(t, notes[0].Note, "score: 50")
}

func TestPostCallSync_NoDispositionLeavesLastDisposition(t *testing.T) {
	manager, _, db := newTestManager(t)
	business := createEngineBusiness(t, db, "Acme Plumbing")

	previous := "closed_won"
	require.NoError(t, models.UpdateBusiness(db, business.ID, models.BusinessUpdate{LastDisposition: &previous}))

	session, err := manager.Start(business.ID, "", "")
	require.NoError(t, err)
	_, err = manager.End(session.SessionID, "")
	require.NoError(t, err)

	updated, err := models.GetBusinessByID(db, business.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed_won", updated.LastDisposition)
}

func TestBuildCallSummary_AllSegments(t *testing.T) {
	db := setupEngineDB(t)

	score := 72
	started := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	session := &models.CallSession{
		StartedAt:       started,
		DurationMinutes: 5,
		BuyerType:       "driver",
		Urgency:         "bleeding",
		Authority:       "sole",
		Disposition:     "not_now",
		DealScore:       &score,
	}
	objections := []models.CallObjection{
		{ObjectionType: "price", Addressed: false},
		{ObjectionType: "timing", Addressed: true},
	}
	painPoints := []models.CallPainPoint{
		{PainText: "missed calls"},
		{PainText: "slow quotes"},
	}

	summary := BuildCallSummary(db, session, objections, painPoints)
	assert.Equal(t,
		"Call 2026-08-29 | 5 min | buyer: driver | urgency: bleeding | authority: sole | "+
			"pain: missed calls, slow quotes | objections open: price | disposition: Not now | score: 72",
		summary)
}

func TestBuildCallSummary_EmptySegmentsOmitted(t *testing.T) {
	db := setupEngineDB(t)

	score := 50
	session := &models.CallSession{
		StartedAt:       time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 1,
		DealScore:       &score,
	}

	summary := BuildCallSummary(db, session, nil, nil)
	assert.Equal(t, "Call 2026-08-29 | 1 min | score: 50", summary)
}
