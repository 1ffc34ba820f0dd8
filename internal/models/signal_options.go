package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leadpulse-crm/LeadPulse/pkg/cache"
	"gorm.io/gorm"
)

// ErrUnknownSignalValue marks a value rejected by its catalog
var ErrUnknownSignalValue = errors.New("unknown signal value")

// Signal catalog kinds. The value sets themselves are data rows seeded by
// bootstrap, not code constants: the catalog can change without touching
// scoring or advisor logic.
const (
	SignalKindBuyerType   = "buyer_type"
	SignalKindUrgency     = "urgency"
	SignalKindAuthority   = "authority"
	SignalKindBudget      = "budget"
	SignalKindObjection   = "objection_type"
	SignalKindDisposition = "disposition"
)

// SignalOption is one {value, label} pair of an externally-owned enumeration
type SignalOption struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	Kind  string `json:"kind" gorm:"size:50;not null;uniqueIndex:idx_kind_value"`
	Value string `json:"value" gorm:"size:50;not null;uniqueIndex:idx_kind_value"`
	Label string `json:"label" gorm:"size:200"`
	Sort  int    `json:"sort" gorm:"default:0"`
}

func (SignalOption) TableName() string {
	return "signal_options"
}

func catalogCacheKey(kind string) string {
	return "catalog:" + kind
}

// GetCatalog returns the options of one kind in display order, served from the
// global cache when warm
func GetCatalog(db *gorm.DB, kind string) ([]SignalOption, error) {
	ctx := context.Background()
	c := cache.GetGlobalCache()
	if v, ok := c.Get(ctx, catalogCacheKey(kind)); ok {
		if options, ok := v.([]SignalOption); ok {
			return options, nil
		}
	}

	var options []SignalOption
	err := db.Where("kind = ?", kind).Order("sort ASC, id ASC").Find(&options).Error
	if err != nil {
		return nil, err
	}
	_ = c.Set(ctx, catalogCacheKey(kind), options, 0)
	return options, nil
}

// InvalidateCatalog drops a kind from the cache after seeding or edits
func InvalidateCatalog(kind string) {
	_ = cache.GetGlobalCache().Delete(context.Background(), catalogCacheKey(kind))
}

// ValidateSignalValue checks a value against its catalog. This is the single
// enum validation point; the engine itself never re-validates.
func ValidateSignalValue(db *gorm.DB, kind, value string) error {
	options, err := GetCatalog(db, kind)
	if err != nil {
		return err
	}
	for _, option := range options {
		if option.Value == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", ErrUnknownSignalValue, kind, value)
}

// SignalLabel resolves a catalog value to its display label, falling back to
// the raw value when the catalog has no entry
func SignalLabel(db *gorm.DB, kind, value string) string {
	options, err := GetCatalog(db, kind)
	if err != nil {
		return value
	}
	for _, option := range options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}
