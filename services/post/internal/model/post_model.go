package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID            string           `gorm:"type:uuid;primary_key"`
	MemberID      string           `gorm:"type:uuid;not null;index"`
	Category      string           `gorm:"not null;index"`
	Title         string           `gorm:"not null"`
	Content       string           `gorm:"type:text"`
	Price         int              `gorm:"not null;default:0"`
	Views         int              `gorm:"default:0"`
	ProductStatus string           `gorm:"type:varchar(20);not null;default:'for_sale'"`
	Visibility    string           `gorm:"type:varchar(20);not null;default:'visible'"`
	PostedAt      time.Time        `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Images        []PostImageModel `gorm:"foreignKey:PostID"`
	Member        *MemberModel     `gorm:"foreignKey:MemberID"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostImageModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	PostID    string    `gorm:"type:uuid;not null;index"`
	ImagePath string    `gorm:"not null"`
	Order     int       `gorm:"default:0;index"`
	CreatedAt time.Time
}

func (PostImageModel) TableName() string {
	return "post_images"
}

func (pi *PostImageModel) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
