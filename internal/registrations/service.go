package registrations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/internal/events"
	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
)

// Service exposes free event registrations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) error
}

// RegisterInput holds a registration form submission.
type RegisterInput struct {
	EventID uuid.UUID
	Name    string
	Email   string
	Phone   string
	City    string
	State   string
	Country string
}

type service struct {
	repo   *Repository
	events *events.Repository
}

func NewService(repo *Repository, eventsRepo *events.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("registration repository required")
	}
	if eventsRepo == nil {
		return nil, fmt.Errorf("event repository required")
	}
	return &service{repo: repo, events: eventsRepo}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) error {
	details := map[string]string{}
	if input.EventID == uuid.Nil {
		details["event"] = "is required"
	}
	required := map[string]string{
		"name":    input.Name,
		"email":   input.Email,
		"city":    input.City,
		"state":   input.State,
		"country": input.Country,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			details[field] = "is required"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if _, err := s.events.FindActiveByID(ctx, input.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}

	registration := &models.Registration{
		EventID: input.EventID,
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   trimmedOrNil(input.Phone),
		City:    strings.TrimSpace(input.City),
		State:   strings.TrimSpace(input.State),
		Country: strings.TrimSpace(input.Country),
	}
	if _, err := s.repo.Create(ctx, registration); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert registration")
	}
	return nil
}

func trimmedOrNil(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
