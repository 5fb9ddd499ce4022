package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The sqlite dialector backs the dev feature flag and the behavioral suite, so
// every model schema has to migrate cleanly without Postgres-only defaults.
func TestAutoMigrateAllModelsOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = conn.AutoMigrate(
		&Donation{},
		&TicketBooking{},
		&Event{},
		&Registration{},
		&ContactMessage{},
		&CommunitySignup{},
		&DonationOption{},
	)
	if err != nil {
		t.Fatalf("auto-migrate failed: %v", err)
	}

	signup := &CommunitySignup{Name: "Lee Park", Email: "lee@example.org"}
	if err := conn.Create(signup).Error; err != nil {
		t.Fatalf("insert after migrate failed: %v", err)
	}
	if signup.ID == uuid.Nil {
		t.Fatal("expected BeforeCreate to assign an id without a database default")
	}
}
