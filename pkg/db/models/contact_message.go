package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name    string    `gorm:"column:name;not null"`
	Email   string    `gorm:"column:email;not null"`
	Subject string    `gorm:"column:subject;not null"`
	Message string    `gorm:"column:message;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (c *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
