package tickets

import (
	"time"

	"github.com/google/uuid"

	"github.com/relevant-recovery/recovery-backend/internal/events"
	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
)

// BookingDTO is the full booking payload returned to clients.
type BookingDTO struct {
	ID           uuid.UUID `json:"id"`
	TicketNumber string    `json:"ticketNumber"`
	EventID      uuid.UUID `json:"eventId"`

	Event *events.EventSummaryDTO `json:"event,omitempty"`

	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	CustomerCity    *string `json:"customerCity,omitempty"`
	CustomerState   *string `json:"customerState,omitempty"`
	CustomerCountry *string `json:"customerCountry,omitempty"`

	Quantity         int    `json:"quantity"`
	UnitPriceCents   int    `json:"unitPriceCents"`
	TotalAmountCents int    `json:"totalAmountCents"`
	Currency         string `json:"currency"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	PaymentIntentID *string `json:"paymentIntentId,omitempty"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBookingDTO builds a DTO from the persisted model. The event summary is
// attached separately by callers that loaded the event.
func NewBookingDTO(booking *models.TicketBooking) *BookingDTO {
	return &BookingDTO{
		ID:               booking.ID,
		TicketNumber:     booking.TicketNumber(),
		EventID:          booking.EventID,
		CustomerName:     booking.CustomerName,
		CustomerEmail:    booking.CustomerEmail,
		CustomerPhone:    booking.CustomerPhone,
		CustomerCity:     booking.CustomerCity,
		CustomerState:    booking.CustomerState,
		CustomerCountry:  booking.CustomerCountry,
		Quantity:         booking.Quantity,
		UnitPriceCents:   booking.UnitPriceCents,
		TotalAmountCents: booking.TotalAmountCents,
		Currency:         booking.Currency.String(),
		Status:           booking.Status.String(),
		PaymentStatus:    booking.PaymentStatus.String(),
		PaymentIntentID:  booking.PaymentIntentID,
		PaymentMethod:    booking.PaymentMethod,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}
}

// BookingCustomerDTO is the short customer block echoed on reservation.
type BookingCustomerDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingResult is returned after a reservation, carrying everything Stripe
// Elements needs to collect payment.
type BookingResult struct {
	ClientSecret string                 `json:"clientSecret"`
	TicketID     uuid.UUID              `json:"ticketId"`
	TicketNumber string                 `json:"ticketNumber"`
	Amount       int                    `json:"amount"`
	Currency     string                 `json:"currency"`
	Event        events.EventSummaryDTO `json:"event"`
	Customer     BookingCustomerDTO     `json:"customer"`
	Quantity     int                    `json:"quantity"`
	TotalAmount  int                    `json:"totalAmount"`
}

// BookingListDTO is one page of bookings for the admin surface.
type BookingListDTO struct {
	Bookings   []BookingDTO `json:"bookings"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// StatusStatsDTO is the per-status slice of the event stats.
type StatusStatsDTO struct {
	Status       string `json:"status"`
	Count        int    `json:"count"`
	Seats        int    `json:"seats"`
	RevenueCents int    `json:"revenueCents"`
}

// EventStatsDTO aggregates an event's bookings for the admin dashboard.
// Revenue only counts paid-for seats; reserved holds are not money yet.
type EventStatsDTO struct {
	EventID           uuid.UUID        `json:"eventId"`
	TotalBookings     int              `json:"totalBookings"`
	TotalSeats        int              `json:"totalSeats"`
	SeatsHeld         int              `json:"seatsHeld"`
	ConfirmedRevenues int              `json:"confirmedRevenueCents"`
	ByStatus          []StatusStatsDTO `json:"byStatus"`
}
