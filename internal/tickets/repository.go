package tickets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	"github.com/relevant-recovery/recovery-backend/pkg/pagination"
)

// Repository wires ticket booking persistence.
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

// Create inserts a new booking row.
func (r *Repository) Create(ctx context.Context, booking *models.TicketBooking) (*models.TicketBooking, error) {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// Save updates an existing booking row.
func (r *Repository) Save(ctx context.Context, booking *models.TicketBooking) (*models.TicketBooking, error) {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// FindByID loads a booking by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TicketBooking, error) {
	var booking models.TicketBooking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIntentID loads a booking by its processor intent id.
func (r *Repository) FindByIntentID(ctx context.Context, intentID string) (*models.TicketBooking, error) {
	var booking models.TicketBooking
	if err := r.db.WithContext(ctx).First(&booking, "payment_intent_id = ?", intentID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateByIntentID applies updates to the booking matching the intent id,
// skipping rows whose payment already settled or whose booking reached a
// terminal status. A cancelled or used booking stays that way even when a
// late succeeded event arrives; webhook re-delivery touches each booking at
// most once.
func (r *Repository) UpdateByIntentID(ctx context.Context, intentID string, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TicketBooking{}).
		Where(
			"payment_intent_id = ? AND payment_status NOT IN ? AND status NOT IN ?",
			intentID,
			[]string{"paid", "failed", "refunded"},
			[]string{"cancelled", "used"},
		).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// ListResult carries one page of bookings plus the next cursor.
type ListResult struct {
	Bookings   []models.TicketBooking
	NextCursor string
}

// ListByEvent returns the event's bookings newest first with cursor pagination.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID, params pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).Model(&models.TicketBooking{}).Where("event_id = ?", eventID)
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.TicketBooking
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListResult{Bookings: rows, NextCursor: nextCursor}, nil
}

// StatusAggregate is one per-status row of the event booking stats.
type StatusAggregate struct {
	Status       string
	Count        int
	Seats        int
	RevenueCents int
}

// StatsByEvent aggregates booking count, seats and revenue per status.
func (r *Repository) StatsByEvent(ctx context.Context, eventID uuid.UUID) ([]StatusAggregate, error) {
	var rows []StatusAggregate
	err := r.db.WithContext(ctx).
		Model(&models.TicketBooking{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS seats, COALESCE(SUM(total_amount_cents), 0) AS revenue_cents").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
