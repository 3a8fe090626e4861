package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SyncProposal is a client's offer to sync-license a catalogue track
type SyncProposal struct {
	ID               uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TrackID          *uuid.UUID          `gorm:"type:uuid;index" json:"track_id,omitempty"`
	ClientID         *uuid.UUID          `gorm:"type:uuid;index" json:"client_id,omitempty"`
	ProjectTitle     string              `gorm:"size:255" json:"project_title"`
	Status           enum.ProposalStatus `gorm:"size:20;default:'pending';index" json:"status"`
	PaymentStatus    enum.PaymentStatus  `gorm:"size:20;default:'pending';index" json:"payment_status"`
	SyncFee          decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"sync_fee"`
	NegotiatedAmount decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"negotiated_amount"`
	FinalAmount      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"final_amount"`
	CreatedAt        time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`

	// Relationships
	Track *Track `gorm:"foreignKey:TrackID" json:"track,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proposal
func (p *SyncProposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SyncProposal model
func (SyncProposal) TableName() string {
	return "sync_proposals"
}
