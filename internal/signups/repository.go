package signups

import (
	"context"

	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
)

// Repository wires community signup persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new community signup.
func (r *Repository) Create(ctx context.Context, signup *models.CommunitySignup) (*models.CommunitySignup, error) {
	if err := r.db.WithContext(ctx).Create(signup).Error; err != nil {
		return nil, err
	}
	return signup, nil
}
