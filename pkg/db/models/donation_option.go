package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/enums"
)

// DonationOption is a preset giving tier shown in the donation form dropdown.
// Group and SortOrder use prefixed column names because "group" and "order"
// are reserved words.
type DonationOption struct {
	ID          uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	Group       string                   `gorm:"column:option_group;not null"`
	Label       string                   `gorm:"column:label;not null"`
	AmountCents int                      `gorm:"column:amount_cents;not null"`
	Type        enums.DonationOptionType `gorm:"column:type;not null"`
	Active      bool                     `gorm:"column:active;not null;default:true"`
	SortOrder   int                      `gorm:"column:sort_order;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *DonationOption) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
