package registrations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/internal/events"
	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Event{}, &models.Registration{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedEvent(t *testing.T, db *gorm.DB, active bool) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:       "Family Support Night",
		Description: "Monthly support meeting",
		Date:        "November 3, 2026",
		Time:        "7:00 PM",
		Place:       "Community Center",
		Cost:        "Free",
		ActionType:  "register",
		IsActive:    active,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return event
}

func validInput(eventID uuid.UUID) RegisterInput {
	return RegisterInput{
		EventID: eventID,
		Name:    "Sam Ortiz",
		Email:   "Sam@Example.org",
		Phone:   "555-010-2000",
		City:    "Duluth",
		State:   "MN",
		Country: "US",
	}
}

func TestRegisterPersists(t *testing.T) {
	db := openTestDB(t)
	event := seedEvent(t, db, true)
	svc, err := NewService(NewRepository(db), events.NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Register(context.Background(), validInput(event.ID)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var stored models.Registration
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load registration: %v", err)
	}
	if stored.EventID != event.ID {
		t.Fatalf("unexpected event id %s", stored.EventID)
	}
	if stored.Email != "sam@example.org" {
		t.Fatalf("expected normalized email, got %s", stored.Email)
	}
}

func TestRegisterRequiresActiveEvent(t *testing.T) {
	db := openTestDB(t)
	inactive := seedEvent(t, db, false)
	svc, err := NewService(NewRepository(db), events.NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	err = svc.Register(ctx, validInput(inactive.ID))
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive event, got %v", err)
	}

	err = svc.Register(ctx, validInput(uuid.New()))
	coded = pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown event, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db), events.NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = svc.Register(context.Background(), RegisterInput{})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := coded.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", coded.Details())
	}
	for _, field := range []string{"event", "name", "email", "city", "state", "country"} {
		if details[field] != "is required" {
			t.Fatalf("expected %s detail, got %v", field, details)
		}
	}
}
