package callintel

import (
	"errors"
	"fmt"
	"time"

	"github.com/leadpulse-crm/LeadPulse/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrUnknownSignalKind is returned for a signal kind outside the four
	// prospect signals
	ErrUnknownSignalKind = errors.New("unknown signal kind")
	// ErrUnknownChecklistFlag is returned for a checklist name outside the
	// four "needs" flags
	ErrUnknownChecklistFlag = errors.New("unknown checklist flag")
	// ErrSeverityOutOfRange is returned when a pain point severity is not 0-10
	ErrSeverityOutOfRange = errors.New("severity must be between 0 and 10")
)

// Signal capture: small, independent, last-write-wins writes against the
// session row. Each mutator persists immediately so a storage failure only
// loses that one mutation and the operator can retry it.

// signalColumns maps a catalog kind to the session column it overwrites
var signalColumns = map[string]string{
	models.SignalKindBuyerType: "buyer_type",
	models.SignalKindUrgency:   "urgency",
	models.SignalKindAuthority: "authority",
	models.SignalKindBudget:    "budget",
}

// checklistColumns maps checklist flag names to session columns
var checklistColumns = map[string]string{
	"demo":       "needs_demo",
	"proposal":   "needs_proposal",
	"case_study": "needs_case_study",
	"trial":      "needs_trial",
}

// SetSignal overwrites one of the four prospect signals. The value is checked
// against its catalog here, at the store boundary; scoring and the advisor
// never re-validate.
func SetSignal(db *gorm.DB, sessionID, kind, value string) error {
	column, ok := signalColumns[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSignalKind, kind)
	}
	if err := models.ValidateSignalValue(db, kind, value); err != nil {
		return err
	}
	return models.UpdateCallSessionFields(db, sessionID, map[string]interface{}{column: value})
}

// ToggleObjection flips the addressed state for one objection type, creating
// the row unaddressed on first use
func ToggleObjection(db *gorm.DB, sessionID, objectionType string) (*models.CallObjection, error) {
	if err := models.ValidateSignalValue(db, models.SignalKindObjection, objectionType); err != nil {
		return nil, err
	}
	return models.ToggleObjection(db, sessionID, objectionType)
}

// AddPainPoint appends a pain point with an optional severity rating (0-10)
func AddPainPoint(db *gorm.DB, sessionID, painText string, severity int) (*models.CallPainPoint, error) {
	if severity < 0 || severity > 10 {
		return nil, fmt.Errorf("%w, got %d", ErrSeverityOutOfRange, severity)
	}
	return models.AddPainPoint(db, sessionID, painText, severity)
}

// SetNotes replaces the session's notes field
func SetNotes(db *gorm.DB, sessionID, notes string) error {
	return models.UpdateCallSessionFields(db, sessionID, map[string]interface{}{"notes": notes})
}

// SetChecklistFlag sets one of the four "needs" flags: demo, proposal,
// case_study, trial
func SetChecklistFlag(db *gorm.DB, sessionID, name string, value bool) error {
	column, ok := checklistColumns[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChecklistFlag, name)
	}
	return models.UpdateCallSessionFields(db, sessionID, map[string]interface{}{column: value})
}

// SetNextAction overwrites the free-text next action
func SetNextAction(db *gorm.DB, sessionID, nextAction string) error {
	return models.UpdateCallSessionFields(db, sessionID, map[string]interface{}{"next_action": nextAction})
}

// SetFollowUpDate sets or clears the follow-up date
func SetFollowUpDate(db *gorm.DB, sessionID string, followUpDate *time.Time) error {
	return models.UpdateCallSessionFields(db, sessionID, map[string]interface{}{"follow_up_date": followUpDate})
}

// SetDisposition validates and records the outcome label mid-call; end also
// accepts one directly
func SetDisposition(db *gorm.DB, sessionID, disposition string) error {
	if err := models.ValidateSignalValue(db, models.SignalKindDisposition, disposition); err != nil {
		return err
	}
	return models.UpdateCallSessionFields(db, sessionID, map[string]interface{}{"disposition": disposition})
}
