package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomSyncRequest is a bespoke composition deal routed to a preferred producer
type CustomSyncRequest struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ClientID            *uuid.UUID          `gorm:"type:uuid;index" json:"client_id,omitempty"`
	PreferredProducerID *uuid.UUID          `gorm:"type:uuid;index" json:"preferred_producer_id,omitempty"`
	ProjectTitle        string              `gorm:"size:255" json:"project_title"`
	Status              string              `gorm:"size:20;default:'open'" json:"status"`
	PaymentStatus       enum.PaymentStatus  `gorm:"size:20;default:'pending';index" json:"payment_status"`
	SyncFee             decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"sync_fee"`
	NegotiatedAmount    decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"negotiated_amount"`
	FinalAmount         decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"final_amount"`
	CreatedAt           time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`

	// Relationships
	PreferredProducer *Profile `gorm:"foreignKey:PreferredProducerID" json:"preferred_producer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new request
func (r *CustomSyncRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomSyncRequest model
func (CustomSyncRequest) TableName() string {
	return "custom_sync_requests"
}
