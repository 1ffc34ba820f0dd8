package models

import (
	"time"

	"gorm.io/gorm"
)

// Business is a lead record produced by the scan pipeline. The call engine
// only consumes a handful of its fields; scan/enrichment owns the rest.
type Business struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"-" gorm:"index"`

	Name         string `json:"name" gorm:"size:200;index"`
	BusinessType string `json:"businessType,omitempty" gorm:"size:100;index"`
	Phone        string `json:"phone,omitempty" gorm:"size:64"`
	Website      string `json:"website,omitempty" gorm:"size:500"`
	Address      string `json:"address,omitempty" gorm:"size:500"`
	ContactName  string `json:"contactName,omitempty" gorm:"size:128"`

	// Outreach state written back by the call engine
	LastContactedAt *time.Time `json:"lastContactedAt,omitempty"`
	FollowUpDate    *time.Time `json:"followUpDate,omitempty"`
	LastDisposition string     `json:"lastDisposition,omitempty" gorm:"size:50;index"`
}

func (Business) TableName() string {
	return "businesses"
}

// OutreachNote is one appended entry in a business's outreach log. Entries are
// append-only; the rendered call summary format is stable because downstream
// consumers read it verbatim.
type OutreachNote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	BusinessID uint   `json:"businessId" gorm:"index;not null"`
	Note       string `json:"note" gorm:"type:text"`
	DealScore  *int   `json:"dealScore,omitempty"`
	Source     string `json:"source,omitempty" gorm:"size:50;index"` // e.g. call_summary
}

func (OutreachNote) TableName() string {
	return "outreach_notes"
}

// CreateBusiness inserts a new business record
func CreateBusiness(db *gorm.DB, business *Business) error {
	return db.Create(business).Error
}

// GetBusinessByID fetches a business by primary key
func GetBusinessByID(db *gorm.DB, id uint) (*Business, error) {
	var business Business
	if err := db.First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// ListBusinesses returns businesses ordered by most recently contacted first,
// optionally filtered by business type
func ListBusinesses(db *gorm.DB, businessType string, limit int) ([]Business, error) {
	var businesses []Business
	// MySQL has no NULLS LAST; IS NULL sorts the never-contacted rows after
	// the contacted ones there.
	order := "last_contacted_at DESC NULLS LAST, id DESC"
	if db.Dialector.Name() == "mysql" {
		order = "last_contacted_at IS NULL, last_contacted_at DESC, id DESC"
	}
	query := db.Order(order)
	if businessType != "" {
		query = query.Where("business_type = ?", businessType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&businesses).Error
	return businesses, err
}

// BusinessUpdate carries the fields Post-Call Sync writes back. Nil fields are
// left untouched.
type BusinessUpdate struct {
	LastContactedAt *time.Time
	FollowUpDate    *time.Time
	LastDisposition *string
}

// UpdateBusiness applies a partial update to the outreach fields
func UpdateBusiness(db *gorm.DB, id uint, update BusinessUpdate) error {
	fields := map[string]interface{}{}
	if update.LastContactedAt != nil {
		fields["last_contacted_at"] = update.LastContactedAt
	}
	if update.FollowUpDate != nil {
		fields["follow_up_date"] = update.FollowUpDate
	}
	if update.LastDisposition != nil {
		fields["last_disposition"] = *update.LastDisposition
	}
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&Business{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendOutreachNote appends one entry to the business's outreach log
func AppendOutreachNote(db *gorm.DB, businessID uint, note string, dealScore *int, source string) error {
	return db.Create(&OutreachNote{
		BusinessID: businessID,
		Note:       note,
		DealScore:  dealScore,
		Source:     source,
	}).Error
}

// ListOutreachNotes returns a business's outreach log, newest first
func ListOutreachNotes(db *gorm.DB, businessID uint, limit int) ([]OutreachNote, error) {
	var notes []OutreachNote
	query := db.Where("business_id = ?", businessID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&notes).Error
	return notes, err
}

// ListDueFollowUps returns businesses whose follow-up date falls on or before
// the given day
func ListDueFollowUps(db *gorm.DB, day time.Time) ([]Business, error) {
	var businesses []Business
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
	err := db.Where("follow_up_date IS NOT NULL AND follow_up_date <= ?", endOfDay).
		Order("follow_up_date ASC").
		Find(&businesses).Error
	return businesses, err
}
