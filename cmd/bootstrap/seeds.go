package bootstrap

import (
	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"gorm.io/gorm"
)

type SeedService struct {
	db *gorm.DB
}

func (s *SeedService) SeedAll() error {
	return s.seedSignalCatalogs()
}

// seedSignalCatalogs writes the default signal catalogs. FirstOrCreate keyed
// on (kind, value) keeps this idempotent and preserves operator edits to
// labels and sort order.
func (s *SeedService) seedSignalCatalogs() error {
	defaults := []models.SignalOption{
		// Buyer archetypes
		{Kind: models.SignalKindBuyerType, Value: "analytical", Label: "Analytical", Sort: 1},
		{Kind: models.SignalKindBuyerType, Value: "driver", Label: "Driver", Sort: 2},
		{Kind: models.SignalKindBuyerType, Value: "expressive", Label: "Expressive", Sort: 3},
		{Kind: models.SignalKindBuyerType, Value: "amiable", Label: "Amiable", Sort: 4},

		// Urgency
		{Kind: models.SignalKindUrgency, Value: "bleeding", Label: "Bleeding - needs it yesterday", Sort: 1},
		{Kind: models.SignalKindUrgency, Value: "urgent", Label: "Urgent - this quarter", Sort: 2},
		{Kind: models.SignalKindUrgency, Value: "planning", Label: "Planning ahead", Sort: 3},
		{Kind: models.SignalKindUrgency, Value: "browsing", Label: "Just browsing", Sort: 4},

		// Authority
		{Kind: models.SignalKindAuthority, Value: "sole", Label: "Sole decision maker", Sort: 1},
		{Kind: models.SignalKindAuthority, Value: "influencer", Label: "Influencer", Sort: 2},
		{Kind: models.SignalKindAuthority, Value: "gatekeeper", Label: "Gatekeeper", Sort: 3},

		// Budget
		{Kind: models.SignalKindBudget, Value: "flexible", Label: "Budget is flexible", Sort: 1},
		{Kind: models.SignalKindBudget, Value: "price_first", Label: "Price comes first", Sort: 2},
		{Kind: models.SignalKindBudget, Value: "constrained", Label: "Budget constrained", Sort: 3},

		// Objection types
		{Kind: models.SignalKindObjection, Value: "price", Label: "Too expensive", Sort: 1},
		{Kind: models.SignalKindObjection, Value: "timing", Label: "Bad timing", Sort: 2},
		{Kind: models.SignalKindObjection, Value: "competitor", Label: "Using a competitor", Sort: 3},
		{Kind: models.SignalKindObjection, Value: "trust", Label: "Needs more trust", Sort: 4},
		{Kind: models.SignalKindObjection, Value: "no_need", Label: "No perceived need", Sort: 5},
		{Kind: models.SignalKindObjection, Value: "authority", Label: "Not the decision maker", Sort: 6},

		// Dispositions
		{Kind: models.SignalKindDisposition, Value: "closed_won", Label: "Closed won", Sort: 1},
		{Kind: models.SignalKindDisposition, Value: "interested", Label: "Interested", Sort: 2},
		{Kind: models.SignalKindDisposition, Value: "not_now", Label: "Not now", Sort: 3},
		{Kind: models.SignalKindDisposition, Value: "not_interested", Label: "Not interested", Sort: 4},
		{Kind: models.SignalKindDisposition, Value: "no_answer", Label: "No answer", Sort: 5},
		{Kind: models.SignalKindDisposition, Value: "callback", Label: "Callback requested", Sort: 6},
		{Kind: models.SignalKindDisposition, Value: "wrong_number", Label: "Wrong number", Sort: 7},
	}

	for _, option := range defaults {
		record := option
		err := s.db.Where("kind = ? AND value = ?", option.Kind, option.Value).
			FirstOrCreate(&record).Error
		if err != nil {
			return err
		}
	}
	return nil
}
