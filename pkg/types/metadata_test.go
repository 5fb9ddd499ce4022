package types

import (
	"testing"
)

func TestMetadataRoundTrip(t *testing.T) {
	m := Metadata{"source": "donation_form", "campaign": "spring"}

	val, err := m.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var decoded Metadata
	if err := decoded.Scan(val); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if decoded["source"] != "donation_form" || decoded["campaign"] != "spring" {
		t.Fatalf("unexpected decode %v", decoded)
	}
}

func TestMetadataNil(t *testing.T) {
	var m Metadata
	val, err := m.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if val != nil {
		t.Fatalf("nil map should produce nil value, got %v", val)
	}

	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if m != nil {
		t.Fatalf("scan of nil should leave map nil")
	}
}

func TestMetadataSetOverwrites(t *testing.T) {
	var m Metadata
	m = m.Set("payment_error", "card declined")
	m = m.Set("payment_error", "insufficient funds")
	if len(m) != 1 {
		t.Fatalf("duplicate keys must overwrite, got %v", m)
	}
	if m["payment_error"] != "insufficient funds" {
		t.Fatalf("latest value should win, got %q", m["payment_error"])
	}
}
