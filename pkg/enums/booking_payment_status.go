package enums

import "fmt"

// BookingPaymentStatus tracks the money side of a ticket booking.
type BookingPaymentStatus string

const (
	BookingPaymentPending  BookingPaymentStatus = "pending"
	BookingPaymentPaid     BookingPaymentStatus = "paid"
	BookingPaymentFailed   BookingPaymentStatus = "failed"
	BookingPaymentRefunded BookingPaymentStatus = "refunded"
)

var validBookingPaymentStatuses = []BookingPaymentStatus{
	BookingPaymentPending,
	BookingPaymentPaid,
	BookingPaymentFailed,
	BookingPaymentRefunded,
}

func (b BookingPaymentStatus) String() string {
	return string(b)
}

func (b BookingPaymentStatus) IsValid() bool {
	for _, candidate := range validBookingPaymentStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further payment transition is allowed.
func (b BookingPaymentStatus) IsTerminal() bool {
	return b == BookingPaymentPaid || b == BookingPaymentFailed || b == BookingPaymentRefunded
}

// ParseBookingPaymentStatus converts raw input into a BookingPaymentStatus.
func ParseBookingPaymentStatus(value string) (BookingPaymentStatus, error) {
	for _, candidate := range validBookingPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking payment status %q", value)
}
