package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeartModel rows are unique per (member_id, post_id); the toggle relies
// on that index for its conditional insert.
type HeartModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	MemberID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_hearts_member_post"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_hearts_member_post;index"`
	CreatedAt time.Time
}

func (HeartModel) TableName() string {
	return "hearts"
}

func (h *HeartModel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}
