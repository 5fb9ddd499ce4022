package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
)

// EventDTO is the event payload returned to clients. Field names follow the
// site's existing frontend contract.
type EventDTO struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Desc            string    `json:"desc"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Place           string    `json:"place"`
	Cost            string    `json:"cost"`
	TicketCostCents *int      `json:"ticketCostCents,omitempty"`
	Capacity        *int      `json:"capacity,omitempty"`
	Highlights      []string  `json:"highlights"`
	SpecialGift     *string   `json:"specialGift,omitempty"`
	ActionType      string    `json:"actionType"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewEventDTO builds a DTO from the persisted model.
func NewEventDTO(event *models.Event) *EventDTO {
	return &EventDTO{
		ID:              event.ID,
		Title:           event.Title,
		Desc:            event.Description,
		Date:            event.Date,
		Time:            event.Time,
		Place:           event.Place,
		Cost:            event.Cost,
		TicketCostCents: event.TicketCostCents,
		Capacity:        event.Capacity,
		Highlights:      append([]string{}, event.Highlights...),
		SpecialGift:     event.SpecialGift,
		ActionType:      event.ActionType,
		ImageURL:        event.ImageURL,
		IsActive:        event.IsActive,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}

// NewEventDTOs maps a slice of models.
func NewEventDTOs(rows []models.Event) []EventDTO {
	out := make([]EventDTO, len(rows))
	for i := range rows {
		out[i] = *NewEventDTO(&rows[i])
	}
	return out
}

// EventSummaryDTO is the short event block embedded in booking responses.
type EventSummaryDTO struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Place string    `json:"place"`
}

// NewEventSummaryDTO builds the embedded summary.
func NewEventSummaryDTO(event *models.Event) EventSummaryDTO {
	return EventSummaryDTO{
		ID:    event.ID,
		Title: event.Title,
		Date:  event.Date,
		Time:  event.Time,
		Place: event.Place,
	}
}
