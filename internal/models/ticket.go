package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is a request for a review of a work (book or article).
// HasReview is true iff at least one review references the ticket; the
// review workflows keep it in sync on both create and delete.
type Ticket struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null;size:128" json:"title"`
	Description string         `gorm:"size:2048" json:"description"`
	Image       string         `gorm:"size:255" json:"image,omitempty"`
	HasReview   bool           `gorm:"default:false" json:"has_review"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
}

func (t *Ticket) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
