package controllers

import (
	"net/http"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	signupsvc "github.com/relevant-recovery/recovery-backend/internal/signups"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
)

// CommunitySignup records a community interest submission.
func CommunitySignup(svc signupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "signup service unavailable"))
			return
		}
		var payload communitySignupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		err := svc.Signup(r.Context(), signupsvc.SignupInput{
			Name:  payload.Name,
			Email: payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"message": "registration successful"})
	}
}

type communitySignupRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}
