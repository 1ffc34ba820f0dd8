package callintel

import (
	"testing"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScore_FreshSession(t *testing.T) {
	session := &models.CallSession{}
	assert.Equal(t, 50, Score(session, nil, nil))
}

func TestScore_StrongSignalsClampedHigh(t *testing.T) {
	session := &models.CallSession{
		Urgency:   "bleeding",
		Authority: "sole",
		Budget:    "flexible",
	}
	painPoints := []models.CallPainPoint{{PainText: "losing leads", Severity: 8}}
	// 50+25+15+15+15 = 120, clamped
	assert.Equal(t, 100, Score(session, nil, painPoints))
}

func TestScore_WeakSignals(t *testing.T) {
	session := &models.CallSession{
		Urgency:   "browsing",
		Authority: "gatekeeper",
		Budget:    "constrained",
	}
	objections := []models.CallObjection{
		{ObjectionType: "price", Addressed: false},
		{ObjectionType: "timing", Addressed: false},
	}
	// 50-10-10-10-10 = 10
	assert.Equal(t, 10, Score(session, objections, nil))
}

func TestScore_ClampedLow(t *testing.T) {
	session := &models.CallSession{
		Urgency:   "browsing",
		Authority: "gatekeeper",
		Budget:    "constrained",
	}
	objections := make([]models.CallObjection, 5)
	for i := range objections {
		objections[i] = models.CallObjection{ObjectionType: string(rune('a' + i))}
	}
	// 50-30-25 = -5, clamped
	assert.Equal(t, 0, Score(session, objections, nil))
}

func TestScore_PainSeverityTiers(t *testing.T) {
	session := &models.CallSession{}

	mild := []models.CallPainPoint{{Severity: 3}}
	assert.Equal(t, 50, Score(session, nil, mild))

	moderate := []models.CallPainPoint{{Severity: 4}}
	assert.Equal(t, 58, Score(session, nil, moderate))

	// Worst pain point wins, count does not stack
	severe := []models.CallPainPoint{{Severity: 2}, {Severity: 9}, {Severity: 5}}
	assert.Equal(t, 65, Score(session, nil, severe))
}

func TestScore_AddressedObjectionsDoNotPenalize(t *testing.T) {
	session := &models.CallSession{}
	objections := []models.CallObjection{
		{ObjectionType: "price", Addressed: true},
		{ObjectionType: "timing", Addressed: false},
	}
	assert.Equal(t, 45, Score(session, objections, nil))
}

func TestScore_Deterministic(t *testing.T) {
	session := &models.CallSession{Urgency: "urgent", Budget: "price_first"}
	objections := []models.CallObjection{{ObjectionType: "price"}}
	painPoints := []models.CallPainPoint{{Severity: 6}}

	first := Score(session, objections, painPoints)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(session, objections, painPoints))
	}
}
