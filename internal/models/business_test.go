package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBusiness(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	now := time.Now()
	followUp := now.AddDate(0, 0, 7)
	disposition := "not_now"
	err := UpdateBusiness(db, business.ID, BusinessUpdate{
		LastContactedAt: &now,
		FollowUpDate:    &followUp,
		LastDisposition: &disposition,
	})
	require.NoError(t, err)

	fetched, err := GetBusinessByID(db, business.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.LastContactedAt)
	require.NotNil(t, fetched.FollowUpDate)
	assert.Equal(t, "not_now", fetched.LastDisposition)

	// Partial update leaves other fields untouched
	later := now.Add(time.Hour)
	require.NoError(t, UpdateBusiness(db, business.ID, BusinessUpdate{LastContactedAt: &later}))
	fetched, err = GetBusinessByID(db, business.ID)
	require.NoError(t, err)
	assert.Equal(t, "not_now", fetched.LastDisposition)
	require.NotNil(t, fetched.FollowUpDate)
}

func TestUpdateBusiness_NotFound(t *testing.T) {
	db := setupCallTestDB(t)
	now := time.Now()
	err := UpdateBusiness(db, 9999, BusinessUpdate{LastContactedAt: &now})
	assert.Error(t, err)
}

func TestOutreachNotes(t *testing.T) {
	db := setupCallTestDB(t)
	business := createTestBusiness(t, db, "Acme Plumbing")

	score := 72
	require.NoError(t, AppendOutreachNote(db, business.ID, "Call 2026-08-29 | 5 min | score: 72", &score, "call_summary"))
	require.NoError(t, AppendOutreachNote(db, business.ID, "left voicemail", nil, "manual"))

	notes, err := ListOutreachNotes(db, business.ID, 10)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// Newest first
	assert.Equal(t, "left voicemail", notes[0].Note)
	require.NotNil(t, notes[1].DealScore)
	assert.Equal(t, 72, *notes[1].DealScore)
}

func TestListBusinesses(t *testing.T) {
	db := setupCallTestDB(t)
	contacted := createTestBusiness(t, db, "Acme Plumbing")
	createTestBusiness(t, db, "Beta Roofing")

	now := time.Now()
	require.NoError(t, UpdateBusiness(db, contacted.ID, BusinessUpdate{LastContactedAt: &now}))

	all, err := ListBusinesses(db, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := ListBusinesses(db, "plumber", 10)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	none, err := ListBusinesses(db, "dentist", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListDueFollowUps(t *testing.T) {
	db := setupCallTestDB(t)
	due := createTestBusiness(t, db, "Acme Plumbing")
	future := createTestBusiness(t, db, "Beta Roofing")

	yesterday := time.Now().AddDate(0, 0, -1)
	nextWeek := time.Now().AddDate(0, 0, 7)
	require.NoError(t, UpdateBusiness(db, due.ID, BusinessUpdate{FollowUpDate: &yesterday}))
	require.NoError(t, UpdateBusiness(db, future.ID, BusinessUpdate{FollowUpDate: &nextWeek}))

	businesses, err := ListDueFollowUps(db, time.Now())
	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, due.ID, businesses[0].ID)
}
