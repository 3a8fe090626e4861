package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WhiteLabelClient is a provisioned white-label storefront and its one-off setup fee
type WhiteLabelClient struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      *uuid.UUID          `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	DisplayName  string              `gorm:"size:255" json:"display_name"`
	Domain       string              `gorm:"size:255" json:"domain"`
	SetupFee     decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"setup_fee"`
	SetupFeePaid bool                `gorm:"default:false;index" json:"setup_fee_paid"`
	CreatedAt    time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`

	// Relationships
	Owner *Profile `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *WhiteLabelClient) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WhiteLabelClient model
func (WhiteLabelClient) TableName() string {
	return "white_label_clients"
}

// WhiteLabelPayment is one recurring monthly charge against a white-label client
type WhiteLabelPayment struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ClientID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"client_id"`
	Amount      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"amount"`
	Status      enum.PaymentStatus  `gorm:"size:20;default:'pending';index" json:"status"`
	PaymentDate time.Time           `gorm:"index;not null" json:"payment_date"`
	CreatedAt   time.Time           `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *WhiteLabelPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WhiteLabelPayment model
func (WhiteLabelPayment) TableName() string {
	return "white_label_payments"
}
