package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
)

const minMessageLength = 10

// Service exposes the contact form.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) error
}

// SubmitInput holds a contact form submission.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) error {
	details := map[string]string{}
	if len(strings.TrimSpace(input.Name)) < 2 {
		details["name"] = "must be at least 2 characters"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "is required"
	}
	if len(strings.TrimSpace(input.Subject)) < 2 {
		details["subject"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(input.Message)) < minMessageLength {
		details["message"] = fmt.Sprintf("must be at least %d characters", minMessageLength)
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	message := &models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if _, err := s.repo.Create(ctx, message); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert contact message")
	}
	return nil
}
