package signups

import (
	"context"
	"fmt"
	"strings"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
)

// Service exposes the community signup form.
type Service interface {
	Signup(ctx context.Context, input SignupInput) error
}

// SignupInput holds a community signup submission.
type SignupInput struct {
	Name  string
	Email string
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("signup repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Signup(ctx context.Context, input SignupInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	signup := &models.CommunitySignup{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
	}
	if _, err := s.repo.Create(ctx, signup); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert community signup")
	}
	return nil
}
