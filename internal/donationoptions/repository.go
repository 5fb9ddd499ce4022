package donationoptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
)

// Repository wires donation option persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active options ordered for display, optionally filtered
// by type.
func (r *Repository) ListActive(ctx context.Context, optionType *enums.DonationOptionType) ([]models.DonationOption, error) {
	qb := r.db.WithContext(ctx).Where("active = ?", true)
	if optionType != nil {
		qb = qb.Where("type = ?", *optionType)
	}
	var rows []models.DonationOption
	err := qb.Order("sort_order ASC").Order("amount_cents ASC").Find(&rows).Error
	return rows, err
}

// FindByID loads an option by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DonationOption, error) {
	var option models.DonationOption
	if err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// Create inserts a new option.
func (r *Repository) Create(ctx context.Context, option *models.DonationOption) (*models.DonationOption, error) {
	if err := r.db.WithContext(ctx).Create(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

// Save updates an existing option.
func (r *Repository) Save(ctx context.Context, option *models.DonationOption) (*models.DonationOption, error) {
	if err := r.db.WithContext(ctx).Save(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}

// Delete removes an option for good. Options carry no history worth keeping.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DonationOption{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
