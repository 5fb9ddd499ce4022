package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration is a free RSVP for an event, separate from paid bookings.
type Registration struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EventID uuid.UUID `gorm:"column:event_id;type:uuid;not null;index"`
	Name    string    `gorm:"column:name;not null"`
	Email   string    `gorm:"column:email;not null"`
	Phone   *string   `gorm:"column:phone"`
	City    string    `gorm:"column:city;not null"`
	State   string    `gorm:"column:state;not null"`
	Country string    `gorm:"column:country;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
