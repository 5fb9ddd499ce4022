package signups

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

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
	if err := conn.AutoMigrate(&models.CommunitySignup{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func TestSignupPersists(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Signup(context.Background(), SignupInput{Name: "Lee Park", Email: "Lee@Example.org"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	var stored models.CommunitySignup
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load signup: %v", err)
	}
	if stored.Email != "lee@example.org" {
		t.Fatalf("expected normalized email, got %s", stored.Email)
	}
}

func TestSignupRequiresNameAndEmail(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = svc.Signup(context.Background(), SignupInput{Name: " ", Email: ""})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := coded.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", coded.Details())
	}
	if details["name"] != "is required" || details["email"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
}
