package controllers

import (
	"net/http"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	contactsvc "github.com/relevant-recovery/recovery-backend/internal/contact"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
)

// SubmitContact stores a contact form message.
func SubmitContact(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}
		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		err := svc.Submit(r.Context(), contactsvc.SubmitInput{
			Name:    validators.SanitizeString(payload.Name, 100),
			Email:   payload.Email,
			Subject: validators.SanitizeString(payload.Subject, 200),
			Message: validators.SanitizeString(payload.Message, 5000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"received": true})
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=2,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}
