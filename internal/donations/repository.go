package donations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	"github.com/relevant-recovery/recovery-backend/pkg/pagination"
)

// Repository wires donation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new donation row.
func (r *Repository) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return nil, err
	}
	return donation, nil
}

// Save updates an existing donation row.
func (r *Repository) Save(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	if err := r.db.WithContext(ctx).Save(donation).Error; err != nil {
		return nil, err
	}
	return donation, nil
}

// FindByID loads a donation by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.WithContext(ctx).First(&donation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// FindByIntentID loads a donation by its processor intent id.
func (r *Repository) FindByIntentID(ctx context.Context, intentID string) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.WithContext(ctx).First(&donation, "stripe_payment_intent_id = ?", intentID).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// UpdateByIntentID applies updates to the donation matching the intent id,
// skipping rows already in a terminal status. The returned count is zero when
// the row was missing or terminal, which makes webhook re-delivery a no-op.
func (r *Repository) UpdateByIntentID(ctx context.Context, intentID string, updates map[string]any) (int64, error) {
	terminal := enums.TerminalPaymentStatuses()
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("stripe_payment_intent_id = ? AND status NOT IN ?", intentID, terminal).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// ListResult carries one page of donations plus the next cursor.
type ListResult struct {
	Donations  []models.Donation
	NextCursor string
}

// List returns donations newest first with cursor pagination.
func (r *Repository) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Model(&models.Donation{})
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Donation
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListResult{Donations: rows, NextCursor: nextCursor}, nil
}
