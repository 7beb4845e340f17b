package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductForSale   ProductStatus = "for_sale"
	ProductReserved  ProductStatus = "reserved"
	ProductCompleted ProductStatus = "completed"
)

type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

type Post struct {
	ID            string        `gorm:"type:uuid;primary_key" json:"id"`
	MemberID      string        `gorm:"type:uuid;not null;index" json:"member_id"`
	Category      string        `gorm:"not null;index" json:"category"`
	Title         string        `gorm:"not null" json:"title"`
	Content       string        `gorm:"type:text" json:"content"`
	Price         int           `gorm:"not null;default:0" json:"price"`
	Views         int           `gorm:"default:0" json:"views"`
	ProductStatus ProductStatus `gorm:"type:varchar(20);default:'for_sale'" json:"product_status"`
	Visibility    Visibility    `gorm:"type:varchar(20);default:'visible'" json:"visibility"`
	PostedAt      time.Time     `gorm:"not null;index" json:"posted_at"`
	Images        []PostImage   `gorm:"foreignKey:PostID" json:"images"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
