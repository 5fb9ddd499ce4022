package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
)

// Repository wires event persistence.
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

// FindByID loads an event regardless of active state.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindActiveByID loads an event only when it is still published.
func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate locks the event row for the duration of the surrounding
// transaction. Ticket booking uses this to serialize capacity checks.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ? AND is_active = ?", id, true).
		Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListActive returns published events, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Event, error) {
	var rows []models.Event
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListAll returns every event including unpublished ones, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Event, error) {
	var rows []models.Event
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// Create inserts a new event row.
func (r *Repository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Save updates an existing event row.
func (r *Repository) Save(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Deactivate soft deletes an event by unpublishing it. Rows are never removed
// because bookings and registrations reference them.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountSeatsHeld returns how many seats reserved or confirmed bookings hold
// for the event. Cancelled and used bookings release their seats.
func (r *Repository) CountSeatsHeld(ctx context.Context, eventID uuid.UUID) (int, error) {
	var total struct {
		Seats int
	}
	err := r.db.WithContext(ctx).
		Model(&models.TicketBooking{}).
		Select("COALESCE(SUM(quantity), 0) AS seats").
		Where("event_id = ? AND status IN ?", eventID, []string{"reserved", "confirmed"}).
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total.Seats, nil
}
