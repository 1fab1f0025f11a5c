package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a rated critique (0-5) attached to exactly one ticket.
type Review struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Rating    int            `gorm:"not null" json:"rating"`
	Headline  string         `gorm:"not null;size:128" json:"headline"`
	Body      string         `gorm:"size:8192" json:"body"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TicketID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"ticket_id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Ticket    Ticket         `gorm:"foreignKey:TicketID" json:"ticket"`
}

func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
