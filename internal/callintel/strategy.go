package callintel

import (
	"strings"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
)

// Coaching tips keyed by captured signal value. Only the signals that change
// how the rep should behave on this call get a tip; the advisor returns an
// empty list for a session with nothing captured yet.

var buyerTypeTips = map[string]string{
	"analytical": "Analytical buyer: lead with numbers, benchmarks and a concrete implementation plan.",
	"driver":     "Driver buyer: be direct, skip the small talk and state the outcome and the price.",
	"expressive": "Expressive buyer: sell the vision and the story; testimonials land better than spreadsheets.",
	"amiable":    "Amiable buyer: build trust first, slow down and avoid pressure tactics.",
}

var urgencyTips = map[string]string{
	"bleeding": "They are losing money right now: anchor on cost of inaction and propose an immediate start.",
	"browsing": "Low urgency: plant seeds and lock in a concrete follow-up instead of pushing to close today.",
}

var authorityTips = map[string]string{
	"gatekeeper": "You are talking to a gatekeeper: find out who signs off and what they need to let you through.",
	"influencer": "An influencer, not the decision maker: arm them with material to sell internally.",
}

var budgetTips = map[string]string{
	"constrained": "Budget is tight: lead with the entry tier and payment flexibility, hold back premium add-ons.",
}

// Tips returns coaching tips for the session's current signals in a fixed
// order: buyer type, urgency, authority, budget, then open objections. Pure
// and side-effect free, safe to call on every read.
func Tips(session *models.CallSession, objections []models.CallObjection) []string {
	tips := []string{}

	if tip, ok := buyerTypeTips[session.BuyerType]; ok {
		tips = append(tips, tip)
	}
	if tip, ok := urgencyTips[session.Urgency]; ok {
		tips = append(tips, tip)
	}
	if tip, ok := authorityTips[session.Authority]; ok {
		tips = append(tips, tip)
	}
	if tip, ok := budgetTips[session.Budget]; ok {
		tips = append(tips, tip)
	}

	var open []string
	for _, objection := range objections {
		if !objection.Addressed {
			open = append(open, objection.ObjectionType)
		}
	}
	if len(open) > 0 {
		tips = append(tips, "Unaddressed objections to work through: "+strings.Join(open, ", "))
	}

	return tips
}
