package callintel

import (
	"fmt"
	"strings"
	"time"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"gorm.io/gorm"
)

// noteSourceCallSummary marks outreach notes written by Post-Call Sync
const noteSourceCallSummary = "call_summary"

// PostCallSync writes the completed session back into its business record:
// one update carrying lastContactedAt plus the optional followUpDate and
// disposition, and one appended summary note. Runs only from end.
func PostCallSync(db *gorm.DB, session *models.CallSession, objections []models.CallObjection, painPoints []models.CallPainPoint, now time.Time) error {
	update := models.BusinessUpdate{LastContactedAt: &now}
	if session.FollowUpDate != nil {
		update.FollowUpDate = session.FollowUpDate
	}
	if session.Disposition != "" {
		disposition := session.Disposition
		update.LastDisposition = &disposition
	}
	if err := models.UpdateBusiness(db, session.BusinessID, update); err != nil {
		return fmt.Errorf("update business: %w", err)
	}

	summary := BuildCallSummary(db, session, objections, painPoints)
	if err := models.AppendOutreachNote(db, session.BusinessID, summary, session.DealScore, noteSourceCallSummary); err != nil {
		return fmt.Errorf("append outreach note: %w", err)
	}
	return nil
}

// BuildCallSummary renders the single-line call summary. Downstream consumers
// read this string verbatim, so the segment order and separators are stable:
// date, duration, buyer type, urgency, authority, pain points, open
// objections, disposition, score — empty segments omitted.
func BuildCallSummary(db *gorm.DB, session *models.CallSession, objections []models.CallObjection, painPoints []models.CallPainPoint) string {
	segments := []string{
		"Call " + session.StartedAt.Format("2006-01-02"),
		fmt.Sprintf("%d min", session.DurationMinutes),
	}

	if session.BuyerType != "" {
		segments = append(segments, "buyer: "+session.BuyerType)
	}
	if session.Urgency != "" {
		segments = append(segments, "urgency: "+session.Urgency)
	}
	if session.Authority != "" {
		segments = append(segments, "authority: "+session.Authority)
	}

	var pains []string
	for _, painPoint := range painPoints {
		pains = append(pains, painPoint.PainText)
	}
	if len(pains) > 0 {
		segments = append(segments, "pain: "+strings.Join(pains, ", "))
	}

	var open []string
	for _, objection := range objections {
		if !objection.Addressed {
			open = append(open, objection.ObjectionType)
		}
	}
	if len(open) > 0 {
		segments = append(segments, "objections open: "+strings.Join(open, ", "))
	}

	if session.Disposition != "" {
		segments = append(segments, "disposition: "+models.SignalLabel(db, models.SignalKindDisposition, session.Disposition))
	}

	score := 0
	if session.DealScore != nil {
		score = *session.DealScore
	}
	segments = append(segments, fmt.Sprintf("score: %d", score))

	return strings.Join(segments, " | ")
}
