package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TrackLicense is a direct purchase of a license for one track
type TrackLicense struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TrackID     *uuid.UUID          `gorm:"type:uuid;index" json:"track_id,omitempty"`
	BuyerID     *uuid.UUID          `gorm:"type:uuid;index" json:"buyer_id,omitempty"`
	LicenseType string              `gorm:"size:50" json:"license_type"`
	Amount      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"amount"`
	CreatedAt   time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Track *Track `gorm:"foreignKey:TrackID" json:"track,omitempty"`
}

// BeforeCreate generates a UUID before creating a new license
func (l *TrackLicense) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TrackLicense model
func (TrackLicense) TableName() string {
	return "track_licenses"
}
