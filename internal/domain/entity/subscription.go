package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/beatlicense-api/internal/domain/enum"
	"gorm.io/gorm"
)

// UserSubscription is a membership subscription. The charged amount is not stored;
// it is derived from PriceID.
type UserSubscription struct {
	ID        uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID               `gorm:"type:uuid;not null;index" json:"user_id"`
	PriceID   string                  `gorm:"size:100;index" json:"price_id"`
	Status    enum.SubscriptionStatus `gorm:"size:20;index" json:"status"`
	CreatedAt time.Time               `gorm:"index" json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new subscription
func (s *UserSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UserSubscription model
func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
