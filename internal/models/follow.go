package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a single directed edge: the follower sees the followed user's
// content in their feed. "Who follows me" is the reverse lookup on the same
// edge, there is no separate inverse table.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_follows_edge" json:"follower_id"`
	FollowedID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_follows_edge" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"-"`
	Followed   User      `gorm:"foreignKey:FollowedID" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
