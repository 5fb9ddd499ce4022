package donations

import (
	"time"

	"github.com/google/uuid"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
)

// DonationDTO is the donation payload returned to clients.
type DonationDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Org       *string   `json:"org,omitempty"`
	Title     *string   `json:"title,omitempty"`
	Email     string    `json:"email"`
	EmailWork *string   `json:"emailWork,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	State     *string   `json:"state,omitempty"`
	Zip       *string   `json:"zip,omitempty"`
	Country   string    `json:"country"`

	AmountCents int    `json:"amountCents"`
	Currency    string `json:"currency"`
	Method      string `json:"paymentMethod"`
	Status      string `json:"paymentStatus"`

	StripePaymentIntentID *string `json:"stripePaymentIntentId,omitempty"`

	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewDonationDTO builds a DTO from the persisted model.
func NewDonationDTO(donation *models.Donation) *DonationDTO {
	return &DonationDTO{
		ID:                    donation.ID,
		FirstName:             donation.FirstName,
		LastName:              donation.LastName,
		Org:                   donation.Org,
		Title:                 donation.Title,
		Email:                 donation.Email,
		EmailWork:             donation.EmailWork,
		Phone:                 donation.Phone,
		Address:               donation.Address,
		City:                  donation.City,
		State:                 donation.State,
		Zip:                   donation.Zip,
		Country:               donation.Country,
		AmountCents:           donation.AmountCents,
		Currency:              donation.Currency.String(),
		Method:                donation.Method.String(),
		Status:                donation.Status.String(),
		StripePaymentIntentID: donation.StripePaymentIntentID,
		PaidAt:                donation.PaidAt,
		CreatedAt:             donation.CreatedAt,
		UpdatedAt:             donation.UpdatedAt,
	}
}

// CreateDonationResult pairs the stored donation with the processor secret the
// frontend needs to collect payment.
type CreateDonationResult struct {
	Donation           *DonationDTO `json:"donation"`
	StripeClientSecret *string      `json:"stripeClientSecret"`
}

// DonationListDTO is one page of donations for the admin surface.
type DonationListDTO struct {
	Donations  []DonationDTO `json:"donations"`
	NextCursor string        `json:"nextCursor,omitempty"`
}
