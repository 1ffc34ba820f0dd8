package callintel

import (
	"testing"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTips_FreshSessionEmpty(t *testing.T) {
	tips := Tips(&models.CallSession{}, nil)
	assert.NotNil(t, tips)
	assert.Empty(t, tips)
}

func TestTips_BuyerTypeArchetypes(t *testing.T) {
	for _, buyerType := range []string{"analytical", "driver", "expressive", "amiable"} {
		tips := Tips(&models.CallSession{BuyerType: buyerType}, nil)
		require.Len(t, tips, 1, buyerType)
	}
	// Each archetype gets a distinct message
	analytical := Tips(&models.CallSession{BuyerType: "analytical"}, nil)
	driver := Tips(&models.CallSession{BuyerType: "driver"}, nil)
	assert.NotEqual(t, analytical[0], driver[0])
}

func TestTips_OnlySelectedValuesFire(t *testing.T) {
	// Mid-range urgency and authority values carry no tip
	assert.Empty(t, Tips(&models.CallSession{Urgency: "urgent"}, nil))
	assert.Empty(t, Tips(&models.CallSession{Urgency: "planning"}, nil))
	assert.Empty(t, Tips(&models.CallSession{Authority: "sole"}, nil))
	assert.Empty(t, Tips(&models.CallSession{Budget: "flexible"}, nil))

	assert.Len(t, Tips(&models.CallSession{Urgency: "bleeding"}, nil), 1)
	assert.Len(t, Tips(&models.CallSession{Urgency: "browsing"}, nil), 1)
	assert.Len(t, Tips(&models.CallSession{Authority: "gatekeeper"}, nil), 1)
	assert.Len(t, Tips(&models.CallSession{Authority: "influencer"}, nil), 1)
	assert.Len(t, Tips(&models.CallSession{Budget: "constrained"}, nil), 1)
}

func TestTips_FixedOrder(t *testing.T) {
	session := &models.CallSession{
		BuyerType: "driver",
		Urgency:   "bleeding",
		Authority: "gatekeeper",
		Budget:    "constrained",
	}
	objections := []models.CallObjection{
		{ObjectionType: "price", Addressed: false},
		{ObjectionType: "timing", Addressed: true},
		{ObjectionType: "competitor", Addressed: false},
	}

	tips := Tips(session, objections)
	require.Len(t, tips, 5)
	assert.Equal(t, buyerTypeTips["driver"], tips[0])
	assert.Equal(t, urgencyTips["bleeding"], tips[1])
	assert.Equal(t, authorityTips["gatekeeper"], tips[2])
	assert.Equal(t, budgetTips["constrained"], tips[3])
	assert.Equal(t, "Unaddressed objections to work through: price, competitor", tips[4])
}

func TestTips_AllObjectionsAddressed(t *testing.T) {
	objections := []models.CallObjection{
		{ObjectionType: "price", Addressed: true},
	}
	assert.Empty(t, Tips(&models.CallSession{}, objections))
}
