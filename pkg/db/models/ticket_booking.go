package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	"github.com/relevant-recovery/recovery-backend/pkg/types"
)

// TicketBooking reserves seats for an event. TotalAmountCents is always
// recomputed from quantity and unit price before persisting; a stale total
// must never reach the processor.
type TicketBooking struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EventID uuid.UUID `gorm:"column:event_id;type:uuid;not null;index"`

	CustomerName    string  `gorm:"column:customer_name;not null"`
	CustomerEmail   string  `gorm:"column:customer_email;not null;index"`
	CustomerPhone   *string `gorm:"column:customer_phone"`
	CustomerCity    *string `gorm:"column:customer_city"`
	CustomerState   *string `gorm:"column:customer_state"`
	CustomerCountry *string `gorm:"column:customer_country"`

	Quantity         int            `gorm:"column:quantity;not null"`
	UnitPriceCents   int            `gorm:"column:unit_price_cents;not null"`
	TotalAmountCents int            `gorm:"column:total_amount_cents;not null"`
	Currency         enums.Currency `gorm:"column:currency;not null;default:'usd'"`

	Status        enums.BookingStatus        `gorm:"column:status;not null;default:'reserved';index"`
	PaymentStatus enums.BookingPaymentStatus `gorm:"column:payment_status;not null;default:'pending'"`

	PaymentIntentID  *string `gorm:"column:payment_intent_id;uniqueIndex"`
	StripeCustomerID *string `gorm:"column:stripe_customer_id"`
	PaymentMethod    *string `gorm:"column:payment_method"`

	Metadata types.Metadata `gorm:"column:metadata;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TicketNumber is the human-facing reference printed on confirmations,
// derived from the tail of the booking id.
func (t *TicketBooking) TicketNumber() string {
	compact := strings.ReplaceAll(t.ID.String(), "-", "")
	return fmt.Sprintf("TKT-%s", strings.ToUpper(compact[len(compact)-6:]))
}

func (t *TicketBooking) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.TotalAmountCents = t.Quantity * t.UnitPriceCents
	return nil
}

func (t *TicketBooking) BeforeUpdate(tx *gorm.DB) error {
	if t.Quantity > 0 && t.UnitPriceCents >= 0 {
		t.TotalAmountCents = t.Quantity * t.UnitPriceCents
	}
	return nil
}
