package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Event is a fundraiser or community happening published on the site. Date,
// time and cost are kept as display strings because the site renders them
// verbatim; TicketCostCents carries the parsed price for paid events.
type Event struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Title           string         `gorm:"column:title;not null"`
	Description     string         `gorm:"column:description;not null"`
	Date            string         `gorm:"column:date;not null"`
	Time            string         `gorm:"column:time;not null"`
	Place           string         `gorm:"column:place;not null"`
	Cost            string         `gorm:"column:cost;not null"`
	TicketCostCents *int           `gorm:"column:ticket_cost_cents"`
	Capacity        *int           `gorm:"column:capacity"`
	Highlights      pq.StringArray `gorm:"column:highlights;type:text[]"`
	SpecialGift     *string        `gorm:"column:special_gift"`
	ActionType      string         `gorm:"column:action_type;not null"`
	ImageURL        *string        `gorm:"column:image_url"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// HasTicketSales reports whether the event sells paid tickets.
func (e *Event) HasTicketSales() bool {
	return e.TicketCostCents != nil && *e.TicketCostCents > 0
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
