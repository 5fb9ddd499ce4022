package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunitySignup records a newsletter/community interest submission.
type CommunitySignup struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name  string    `gorm:"column:name;not null"`
	Email string    `gorm:"column:email;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (c *CommunitySignup) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
