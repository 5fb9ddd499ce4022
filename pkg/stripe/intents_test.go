package stripe

import (
	"testing"
	"time"
)

func TestNewMockIntent(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	intent := NewMockIntent(now)

	if intent.ID != "pi_mock_1700000000000" {
		t.Fatalf("unexpected mock id %s", intent.ID)
	}
	if intent.ClientSecret != "pi_mock_secret_1700000000000" {
		t.Fatalf("unexpected mock secret %s", intent.ClientSecret)
	}
}

func TestIsMockIntentID(t *testing.T) {
	if !IsMockIntentID("pi_mock_1700000000000") {
		t.Fatal("expected mock id to be recognized")
	}
	if IsMockIntentID("pi_3OaBcDeFgHiJkLmN") {
		t.Fatal("real intent ids must not be flagged as mock")
	}
	if IsMockIntentID("pi_mock_") {
		t.Fatal("bare prefix is not a valid mock id")
	}
}

func TestValidateAPIKey(t *testing.T) {
	if err := validateAPIKey("test", "sk_test_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateAPIKey("test", "sk_live_123"); err == nil {
		t.Fatal("live key must be rejected in test env")
	}
	if err := validateAPIKey("live", "sk_live_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateAPIKey("live", "rk_test_123"); err == nil {
		t.Fatal("test key must be rejected in live env")
	}
}
