package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/money"
)

// Service exposes event management operations.
type Service interface {
	ListPublic(ctx context.Context) ([]EventDTO, error)
	ListAdmin(ctx context.Context) ([]EventDTO, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*EventDTO, error)
	Create(ctx context.Context, input CreateEventInput) (*EventDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*EventDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateEventInput holds the validated payload to create an event.
type CreateEventInput struct {
	Title       string
	Desc        string
	Date        string
	Time        string
	Place       string
	Cost        string
	Capacity    *int
	Highlights  []string
	SpecialGift *string
	ActionType  string
	ImageURL    *string
}

// UpdateEventInput holds optional mutation values for an event.
type UpdateEventInput struct {
	Title       *string
	Desc        *string
	Date        *string
	Time        *string
	Place       *string
	Cost        *string
	Capacity    *int
	Highlights  *[]string
	SpecialGift *string
	ActionType  *string
	ImageURL    *string
	IsActive    *bool
}

type service struct {
	repo *Repository
}

// NewService constructs an event service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("event repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublic(ctx context.Context) ([]EventDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	return NewEventDTOs(rows), nil
}

func (s *service) ListAdmin(ctx context.Context) ([]EventDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	return NewEventDTOs(rows), nil
}

func (s *service) GetPublic(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	event, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return NewEventDTO(event), nil
}

func (s *service) Create(ctx context.Context, input CreateEventInput) (*EventDTO, error) {
	if err := validateRequiredFields(input); err != nil {
		return nil, err
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity cannot be negative")
	}

	event := &models.Event{
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Desc),
		Date:            strings.TrimSpace(input.Date),
		Time:            strings.TrimSpace(input.Time),
		Place:           strings.TrimSpace(input.Place),
		Cost:            strings.TrimSpace(input.Cost),
		TicketCostCents: money.TicketCostFromCostString(input.Cost),
		Capacity:        input.Capacity,
		Highlights:      input.Highlights,
		SpecialGift:     input.SpecialGift,
		ActionType:      strings.TrimSpace(input.ActionType),
		ImageURL:        input.ImageURL,
		IsActive:        true,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert event")
	}
	return NewEventDTO(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*EventDTO, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}

	if input.Title != nil {
		event.Title = strings.TrimSpace(*input.Title)
	}
	if input.Desc != nil {
		event.Description = strings.TrimSpace(*input.Desc)
	}
	if input.Date != nil {
		event.Date = strings.TrimSpace(*input.Date)
	}
	if input.Time != nil {
		event.Time = strings.TrimSpace(*input.Time)
	}
	if input.Place != nil {
		event.Place = strings.TrimSpace(*input.Place)
	}
	if input.Cost != nil {
		event.Cost = strings.TrimSpace(*input.Cost)
		event.TicketCostCents = money.TicketCostFromCostString(event.Cost)
	}
	if input.Capacity != nil {
		if *input.Capacity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity cannot be negative")
		}
		event.Capacity = input.Capacity
	}
	if input.Highlights != nil {
		event.Highlights = *input.Highlights
	}
	if input.SpecialGift != nil {
		event.SpecialGift = input.SpecialGift
	}
	if input.ActionType != nil {
		event.ActionType = strings.TrimSpace(*input.ActionType)
	}
	if input.ImageURL != nil {
		event.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}

	saved, err := s.repo.Save(ctx, event)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update event")
	}
	return NewEventDTO(saved), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate event")
	}
	return nil
}

func validateRequiredFields(input CreateEventInput) error {
	missing := map[string]string{}
	required := map[string]string{
		"title":      input.Title,
		"desc":       input.Desc,
		"date":       input.Date,
		"time":       input.Time,
		"place":      input.Place,
		"cost":       input.Cost,
		"actionType": input.ActionType,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing[field] = "is required"
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(missing)
	}
	return nil
}
