package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Track is a piece of music listed for licensing
type Track struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	ProducerID *uuid.UUID `gorm:"type:uuid;index" json:"producer_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	Producer *Profile `gorm:"foreignKey:ProducerID" json:"producer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new track
func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Track model
func (Track) TableName() string {
	return "tracks"
}
