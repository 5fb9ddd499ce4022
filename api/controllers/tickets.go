package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	ticketsvc "github.com/relevant-recovery/recovery-backend/internal/tickets"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/pagination"
	"github.com/relevant-recovery/recovery-backend/pkg/types"
)

// BookTickets reserves seats and returns the payment client secret.
func BookTickets(svc ticketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		var payload bookTicketsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Book(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetTicket returns one booking; the public confirmation page uses it too.
func GetTicket(svc ticketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		booking, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

// UpdateTicketStatus sets a booking's status from the admin dashboard.
func UpdateTicketStatus(svc ticketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateTicketStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		booking, err := svc.UpdateStatus(r.Context(), id, enums.BookingStatus(strings.TrimSpace(payload.Status)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

// ListTicketsByEvent returns an event's bookings for the admin dashboard.
func ListTicketsByEvent(svc ticketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		eventID, err := parseIDParam(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.ListByEvent(r.Context(), eventID, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// EventTicketStats aggregates an event's bookings per status.
func EventTicketStats(svc ticketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		eventID, err := parseIDParam(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		stats, err := svc.EventStats(r.Context(), eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// ConfirmTicketPayment confirms a booking after the client-side payment flow
// completed.
func ConfirmTicketPayment(svc ticketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		var payload confirmTicketPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ticketID, err := uuid.Parse(strings.TrimSpace(payload.TicketID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ticket id"))
			return
		}
		booking, err := svc.ConfirmPayment(r.Context(), ticketsvc.ConfirmPaymentInput{
			PaymentIntentID: strings.TrimSpace(payload.PaymentIntentID),
			TicketID:        ticketID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

type bookTicketsRequest struct {
	EventID  string              `json:"eventId" validate:"required,uuid"`
	Customer bookTicketsCustomer `json:"customer" validate:"required"`
	Quantity int                 `json:"quantity" validate:"required,min=1,max=10"`
	Metadata map[string]string   `json:"metadata,omitempty"`
}

type bookTicketsCustomer struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone"`
	City    string `json:"city" validate:"required,min=2,max=100"`
	State   string `json:"state" validate:"required,min=2,max=100"`
	Country string `json:"country" validate:"required,min=2,max=100"`
}

func (p bookTicketsRequest) toInput() (ticketsvc.BookTicketInput, error) {
	eventID, err := uuid.Parse(strings.TrimSpace(p.EventID))
	if err != nil {
		return ticketsvc.BookTicketInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid event id")
	}
	return ticketsvc.BookTicketInput{
		EventID: eventID,
		Customer: ticketsvc.CustomerInput{
			Name:    p.Customer.Name,
			Email:   p.Customer.Email,
			Phone:   p.Customer.Phone,
			City:    p.Customer.City,
			State:   p.Customer.State,
			Country: p.Customer.Country,
		},
		Quantity: p.Quantity,
		Metadata: types.Metadata(p.Metadata),
	}, nil
}

type updateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reserved confirmed cancelled used"`
}

type confirmTicketPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
	TicketID        string `json:"ticketId" validate:"required,uuid"`
}
