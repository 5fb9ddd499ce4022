package controllers

import (
	"net/http"
	"strings"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	optionsvc "github.com/relevant-recovery/recovery-backend/internal/donationoptions"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
)

// ListDonationOptions returns the active giving tiers, optionally filtered by
// ?type= (contribution, membership, or sponsorship).
func ListDonationOptions(svc optionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation option service unavailable"))
			return
		}
		options, err := svc.List(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, options)
	}
}

// CreateDonationOption adds a giving tier to the catalog.
func CreateDonationOption(svc optionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation option service unavailable"))
			return
		}
		var payload createDonationOptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		option, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, option)
	}
}

// UpdateDonationOption applies a partial update to a giving tier.
func UpdateDonationOption(svc optionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation option service unavailable"))
			return
		}
		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateDonationOptionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		option, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, option)
	}
}

// DeleteDonationOption removes a giving tier.
func DeleteDonationOption(svc optionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation option service unavailable"))
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
		responses.WriteSuccess(w, map[string]string{"message": "donation option removed"})
	}
}

type createDonationOptionRequest struct {
	Group       string `json:"group" validate:"required,max=100"`
	Label       string `json:"label" validate:"required,max=200"`
	AmountCents int    `json:"amountCents" validate:"required,gt=0"`
	Type        string `json:"type" validate:"required,oneof=contribution membership sponsorship"`
	SortOrder   int    `json:"sortOrder" validate:"omitempty,min=0"`
	Active      *bool  `json:"active,omitempty"`
}

func (p createDonationOptionRequest) toInput() optionsvc.CreateOptionInput {
	return optionsvc.CreateOptionInput{
		Group:       p.Group,
		Label:       p.Label,
		AmountCents: p.AmountCents,
		Type:        enums.DonationOptionType(strings.TrimSpace(p.Type)),
		SortOrder:   p.SortOrder,
		Active:      p.Active,
	}
}

type updateDonationOptionRequest struct {
	Group       *string `json:"group,omitempty"`
	Label       *string `json:"label,omitempty"`
	AmountCents *int    `json:"amountCents,omitempty"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=contribution membership sponsorship"`
	SortOrder   *int    `json:"sortOrder,omitempty" validate:"omitempty,min=0"`
	Active      *bool   `json:"active,omitempty"`
}

func (p updateDonationOptionRequest) toInput() optionsvc.UpdateOptionInput {
	input := optionsvc.UpdateOptionInput{
		Group:       p.Group,
		Label:       p.Label,
		AmountCents: p.AmountCents,
		SortOrder:   p.SortOrder,
		Active:      p.Active,
	}
	if p.Type != nil {
		parsed := enums.DonationOptionType(strings.TrimSpace(*p.Type))
		input.Type = &parsed
	}
	return input
}
