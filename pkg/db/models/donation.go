package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	"github.com/relevant-recovery/recovery-backend/pkg/types"
)

// Donation is a single giving record. AmountCents is always the minor-unit
// total; the row is persisted as pending before any processor call so a
// processor outage never loses the donor's intent.
type Donation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Org       *string   `gorm:"column:org"`
	Title     *string   `gorm:"column:title"`

	Email     string  `gorm:"column:email;not null;index:idx_donations_email_created_at,priority:1"`
	EmailWork *string `gorm:"column:email_work"`
	Phone     *string `gorm:"column:phone"`

	Address *string `gorm:"column:address"`
	City    *string `gorm:"column:city"`
	State   *string `gorm:"column:state"`
	Zip     *string `gorm:"column:zip"`
	Country string  `gorm:"column:country;not null;default:'US'"`

	AmountCents int                 `gorm:"column:amount_cents;not null"`
	Currency    enums.Currency      `gorm:"column:currency;not null;default:'usd'"`
	Method      enums.PaymentMethod `gorm:"column:method;not null;default:'stripe'"`
	Status      enums.PaymentStatus `gorm:"column:status;not null;default:'pending';index"`

	StripePaymentIntentID *string `gorm:"column:stripe_payment_intent_id;uniqueIndex"`
	StripeCustomerID      *string `gorm:"column:stripe_customer_id"`
	StripePaymentMethod   *string `gorm:"column:stripe_payment_method"`

	Metadata types.Metadata `gorm:"column:metadata;type:jsonb"`
	Error    *string        `gorm:"column:error"`

	PaidAt    *time.Time `gorm:"column:paid_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime;index:idx_donations_email_created_at,priority:2"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
