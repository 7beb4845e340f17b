package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Heart struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	MemberID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_hearts_member_post" json:"member_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_hearts_member_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Foreign keys
	Member Member `gorm:"foreignKey:MemberID" json:"-"`
	Post   Post   `gorm:"foreignKey:PostID" json:"-"`
}

func (h *Heart) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}
