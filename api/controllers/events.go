package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	eventsvc "github.com/relevant-recovery/recovery-backend/internal/events"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
)

// ListEvents returns published events for the public site.
func ListEvents(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}
		events, err := svc.ListPublic(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, events)
	}
}

// ListEventsAdmin returns every event, including unpublished ones.
func ListEventsAdmin(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}
		events, err := svc.ListAdmin(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, events)
	}
}

// GetEvent returns one published event.
func GetEvent(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}
		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		event, err := svc.GetPublic(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, event)
	}
}

// CreateEvent publishes a new event.
func CreateEvent(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}
		var payload createEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		event, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, event)
	}
}

// UpdateEvent applies a partial update to an event.
func UpdateEvent(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}
		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		event, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, event)
	}
}

// DeleteEvent unpublishes an event; bookings and registrations keep their
// references.
func DeleteEvent(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}
		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "event removed"})
	}
}

type createEventRequest struct {
	Title       string   `json:"title" validate:"required"`
	Desc        string   `json:"desc" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Place       string   `json:"place" validate:"required"`
	Cost        string   `json:"cost" validate:"required"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,min=0"`
	Highlights  []string `json:"highlights,omitempty"`
	SpecialGift *string  `json:"specialGift,omitempty"`
	ActionType  string   `json:"actionType" validate:"required"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

func (p createEventRequest) toInput() eventsvc.CreateEventInput {
	return eventsvc.CreateEventInput{
		Title:       strings.TrimSpace(p.Title),
		Desc:        strings.TrimSpace(p.Desc),
		Date:        strings.TrimSpace(p.Date),
		Time:        strings.TrimSpace(p.Time),
		Place:       strings.TrimSpace(p.Place),
		Cost:        strings.TrimSpace(p.Cost),
		Capacity:    p.Capacity,
		Highlights:  p.Highlights,
		SpecialGift: p.SpecialGift,
		ActionType:  strings.TrimSpace(p.ActionType),
		ImageURL:    p.ImageURL,
	}
}

type updateEventRequest struct {
	Title       *string   `json:"title,omitempty"`
	Desc        *string   `json:"desc,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Time        *string   `json:"time,omitempty"`
	Place       *string   `json:"place,omitempty"`
	Cost        *string   `json:"cost,omitempty"`
	Capacity    *int      `json:"capacity,omitempty" validate:"omitempty,min=0"`
	Highlights  *[]string `json:"highlights,omitempty"`
	SpecialGift *string   `json:"specialGift,omitempty"`
	ActionType  *string   `json:"actionType,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

func (p updateEventRequest) toInput() eventsvc.UpdateEventInput {
	return eventsvc.UpdateEventInput{
		Title:       p.Title,
		Desc:        p.Desc,
		Date:        p.Date,
		Time:        p.Time,
		Place:       p.Place,
		Cost:        p.Cost,
		Capacity:    p.Capacity,
		Highlights:  p.Highlights,
		SpecialGift: p.SpecialGift,
		ActionType:  p.ActionType,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
