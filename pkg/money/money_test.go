package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDollarsToCentsRoundsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"50", 5000},
		{"49.99", 4999},
		{"49.999", 5000},
		{"0.005", 1},
		{"10.004", 1000},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.in, err)
		}
		if got := DollarsToCents(amount); got != tc.want {
			t.Errorf("DollarsToCents(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseDollarAmount(t *testing.T) {
	if got, err := ParseDollarAmount("$25.50"); err != nil || got != 2550 {
		t.Fatalf("ParseDollarAmount($25.50) = %d, %v", got, err)
	}
	if got, err := ParseDollarAmount("100"); err != nil || got != 10000 {
		t.Fatalf("ParseDollarAmount(100) = %d, %v", got, err)
	}
	if _, err := ParseDollarAmount("Free"); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}

func TestTicketCostFromCostString(t *testing.T) {
	if got := TicketCostFromCostString("Free"); got != nil {
		t.Fatalf("free events have no ticket cost, got %d", *got)
	}
	if got := TicketCostFromCostString("25"); got != nil {
		t.Fatalf("missing dollar sign means no ticket sales, got %d", *got)
	}
	got := TicketCostFromCostString("$25")
	if got == nil || *got != 2500 {
		t.Fatalf("expected 2500, got %v", got)
	}
	got = TicketCostFromCostString("$12.75 per person")
	if got == nil || *got != 1275 {
		t.Fatalf("expected 1275, got %v", got)
	}
}
