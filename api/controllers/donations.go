package controllers

import (
	"net/http"
	"strings"

	"github.com/relevant-recovery/recovery-backend/api/responses"
	"github.com/relevant-recovery/recovery-backend/api/validators"
	donationsvc "github.com/relevant-recovery/recovery-backend/internal/donations"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/pagination"
)

// CreateDonation records a donation and, for stripe, returns the client
// secret the donation form needs.
func CreateDonation(svc donationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation service unavailable"))
			return
		}
		var payload createDonationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ListDonations returns donations for the admin dashboard, newest first.
func ListDonations(svc donationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "donation service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.List(r.Context(), pagination.Params{
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

type createDonationRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Org       *string `json:"org,omitempty" validate:"omitempty,max=200"`
	Title     *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	EmailWork *string `json:"emailWork,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=300"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State     *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zip       *string `json:"zip,omitempty" validate:"omitempty,zipcode"`
	Country   string  `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`

	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`

	Volunteer      bool `json:"volunteer,omitempty"`
	FamilyServices bool `json:"familyServices,omitempty"`
}

func (p createDonationRequest) toInput() (donationsvc.CreateDonationInput, error) {
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(p.PaymentMethod))
	if err != nil {
		return donationsvc.CreateDonationInput{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"paymentMethod": "is invalid"})
	}
	return donationsvc.CreateDonationInput{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Org:            p.Org,
		Title:          p.Title,
		Email:          p.Email,
		EmailWork:      p.EmailWork,
		Phone:          p.Phone,
		Address:        p.Address,
		City:           p.City,
		State:          p.State,
		Zip:            p.Zip,
		Country:        p.Country,
		Amount:         p.Amount,
		PaymentMethod:  method,
		Volunteer:      p.Volunteer,
		FamilyServices: p.FamilyServices,
	}, nil
}
