package donationoptions

import (
	"time"

	"github.com/google/uuid"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
)

// OptionDTO is a giving tier as rendered in the donation form.
type OptionDTO struct {
	ID          uuid.UUID `json:"id"`
	Group       string    `json:"group"`
	Label       string    `json:"label"`
	AmountCents int       `json:"amountCents"`
	Type        string    `json:"type"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewOptionDTO builds a DTO from the persisted model.
func NewOptionDTO(option *models.DonationOption) *OptionDTO {
	return &OptionDTO{
		ID:          option.ID,
		Group:       option.Group,
		Label:       option.Label,
		AmountCents: option.AmountCents,
		Type:        option.Type.String(),
		Active:      option.Active,
		SortOrder:   option.SortOrder,
		CreatedAt:   option.CreatedAt,
		UpdatedAt:   option.UpdatedAt,
	}
}

// NewOptionDTOs maps a model slice.
func NewOptionDTOs(options []models.DonationOption) []OptionDTO {
	dtos := make([]OptionDTO, len(options))
	for i := range options {
		dtos[i] = *NewOptionDTO(&options[i])
	}
	return dtos
}
