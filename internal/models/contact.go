package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a visitor message captured by the contact form.
// Records are append-only: nothing in the service updates or deletes them.
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name" validate:"required"`
	Email     string    `gorm:"size:255;not null" json:"email" validate:"required"`
	Subject   string    `gorm:"size:255;not null" json:"subject" validate:"required"`
	Message   string    `gorm:"type:text;not null" json:"message" validate:"required"`
	CreatedAt time.Time `gorm:"index;not null" json:"createdAt"`
}

// BeforeCreate assigns an identifier for SQL stores.
func (c *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
