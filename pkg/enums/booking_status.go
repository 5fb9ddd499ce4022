package enums

import "fmt"

// BookingStatus tracks a ticket reservation from hold to redemption.
type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusUsed      BookingStatus = "used"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusReserved,
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusUsed,
}

func (b BookingStatus) String() string {
	return string(b)
}

func (b BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the booking may no longer change state. A
// cancelled or used booking stays that way regardless of later payment events.
func (b BookingStatus) IsTerminal() bool {
	return b == BookingStatusCancelled || b == BookingStatusUsed
}

// CountsAgainstCapacity reports whether a booking in this status holds seats.
func (b BookingStatus) CountsAgainstCapacity() bool {
	return b == BookingStatusReserved || b == BookingStatusConfirmed
}

// ParseBookingStatus converts raw input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
