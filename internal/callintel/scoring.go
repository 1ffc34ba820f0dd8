package callintel

import (
	"github.com/leadpulse-crm/LeadPulse/internal/models"
)

// Deal scoring terms. The score is always re-derived from the captured signals
// rather than accumulated incrementally, so repeated computation can never
// drift from the stored state.
const scoreBase = 50

var urgencyTerms = map[string]int{
	"bleeding": 25,
	"urgent":   15,
	"planning": 5,
	"browsing": -10,
}

var authorityTerms = map[string]int{
	"sole":       15,
	"influencer": 5,
	"gatekeeper": -10,
}

var budgetTerms = map[string]int{
	"flexible":    15,
	"price_first": -5,
	"constrained": -10,
}

const unaddressedObjectionPenalty = 5

// Score derives the deal score from a session's signals, objections and pain
// points. Pure and deterministic; unset signals contribute nothing. The result
// is always clamped to [0, 100].
func Score(session *models.CallSession, objections []models.CallObjection, painPoints []models.CallPainPoint) int {
	score := scoreBase
	score += urgencyTerms[session.Urgency]
	score += authorityTerms[session.Authority]
	score += budgetTerms[session.Budget]
	score += painTerm(painPoints)
	score -= unaddressedObjectionPenalty * countUnaddressed(objections)
	return clampScore(score)
}

// painTerm rewards severe pain: the prospect's worst pain point drives the
// bonus, not the count
func painTerm(painPoints []models.CallPainPoint) int {
	maxSeverity := 0
	for _, painPoint := range painPoints {
		if painPoint.Severity > maxSeverity {
			maxSeverity = painPoint.Severity
		}
	}
	switch {
	case maxSeverity >= 7:
		return 15
	case maxSeverity >= 4:
		return 8
	default:
		return 0
	}
}

func countUnaddressed(objections []models.CallObjection) int {
	count := 0
	for _, objection := range objections {
		if !objection.Addressed {
			count++
		}
	}
	return count
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
