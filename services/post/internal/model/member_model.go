package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberModel struct {
	ID           string    `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	ProfileImage string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (MemberModel) TableName() string {
	return "members"
}

func (m *MemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
