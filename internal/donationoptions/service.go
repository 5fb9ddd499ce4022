package donationoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
)

// Service exposes the donation option catalog.
type Service interface {
	List(ctx context.Context, optionType string) ([]OptionDTO, error)
	Create(ctx context.Context, input CreateOptionInput) (*OptionDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOptionInput) (*OptionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateOptionInput holds a new giving tier.
type CreateOptionInput struct {
	Group       string
	Label       string
	AmountCents int
	Type        enums.DonationOptionType
	SortOrder   int
	Active      *bool
}

// UpdateOptionInput carries partial updates; nil fields are left untouched.
type UpdateOptionInput struct {
	Group       *string
	Label       *string
	AmountCents *int
	Type        *enums.DonationOptionType
	SortOrder   *int
	Active      *bool
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("donation option repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, optionType string) ([]OptionDTO, error) {
	var filter *enums.DonationOptionType
	if strings.TrimSpace(optionType) != "" {
		parsed, err := enums.ParseDonationOptionType(optionType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"type": "is invalid"})
		}
		filter = &parsed
	}

	options, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donation options")
	}
	return NewOptionDTOs(options), nil
}

func (s *service) Create(ctx context.Context, input CreateOptionInput) (*OptionDTO, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.Group) == "" {
		details["group"] = "is required"
	}
	if strings.TrimSpace(input.Label) == "" {
		details["label"] = "is required"
	}
	if input.AmountCents <= 0 {
		details["amount"] = "must be greater than 0"
	}
	if !input.Type.IsValid() {
		details["type"] = "is invalid"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	option := &models.DonationOption{
		Group:       strings.TrimSpace(input.Group),
		Label:       strings.TrimSpace(input.Label),
		AmountCents: input.AmountCents,
		Type:        input.Type,
		Active:      active,
		SortOrder:   input.SortOrder,
	}
	if _, err := s.repo.Create(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert donation option")
	}
	return NewOptionDTO(option), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOptionInput) (*OptionDTO, error) {
	option, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load donation option")
	}

	if input.Group != nil {
		if strings.TrimSpace(*input.Group) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"group": "cannot be empty"})
		}
		option.Group = strings.TrimSpace(*input.Group)
	}
	if input.Label != nil {
		if strings.TrimSpace(*input.Label) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"label": "cannot be empty"})
		}
		option.Label = strings.TrimSpace(*input.Label)
	}
	if input.AmountCents != nil {
		if *input.AmountCents <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"amount": "must be greater than 0"})
		}
		option.AmountCents = *input.AmountCents
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"type": "is invalid"})
		}
		option.Type = *input.Type
	}
	if input.SortOrder != nil {
		option.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		option.Active = *input.Active
	}

	if _, err := s.repo.Save(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update donation option")
	}
	return NewOptionDTO(option), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "donation option not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete donation option")
	}
	return nil
}
