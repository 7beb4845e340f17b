package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID        string       `gorm:"type:uuid;primary_key"`
	MemberID  string       `gorm:"type:uuid;not null;index"`
	PostID    string       `gorm:"type:uuid;not null;index"`
	Content   string       `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Member    *MemberModel `gorm:"foreignKey:MemberID"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
