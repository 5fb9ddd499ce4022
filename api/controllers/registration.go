package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	registrationsvc "github.com/relevant-recovery/recovery-backend/internal/registrations"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
)

// RegisterForEvent records a free RSVP for an event.
func RegisterForEvent(svc registrationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registration service unavailable"))
			return
		}
		var payload registrationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		eventID, err := uuid.Parse(strings.TrimSpace(payload.Event))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid event id"))
			return
		}
		err = svc.Register(r.Context(), registrationsvc.RegisterInput{
			EventID: eventID,
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			City:    payload.City,
			State:   payload.State,
			Country: payload.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"message": "registration successful"})
	}
}

type registrationRequest struct {
	Event   string `json:"event" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,phone"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Country string `json:"country" validate:"required,max=100"`
}
