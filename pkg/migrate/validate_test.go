package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations must validate: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "001_init.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected short version prefix to be rejected")
	}
}

func TestValidateDirRequiresGooseHeaders(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "20250218104500_missing_down.sql")
	if err := os.WriteFile(file, []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil || !strings.Contains(err.Error(), "goose Down") {
		t.Fatalf("expected missing Down header error, got %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Webhook Audit!")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasSuffix(name, "_add_webhook_audit.sql") {
		t.Fatalf("unexpected sanitized name %s", name)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration must validate: %v", err)
	}
}
