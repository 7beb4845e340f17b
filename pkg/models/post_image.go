package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostImage struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	ImagePath string    `gorm:"not null" json:"image_path"`
	Order     int       `gorm:"default:0;index" json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

func (pi *PostImage) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
