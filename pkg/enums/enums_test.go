package enums

import "testing"

func TestParsePaymentStatus(t *testing.T) {
	status, err := ParsePaymentStatus("requires_payment_method")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != PaymentStatusRequiresPaymentMethod {
		t.Fatalf("expected requires_payment_method, got %s", status)
	}

	if _, err := ParsePaymentStatus("charged"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestPaymentStatusTerminal(t *testing.T) {
	terminal := []PaymentStatus{
		PaymentStatusSucceeded,
		PaymentStatusFailed,
		PaymentStatusCancelled,
		PaymentStatusRefunded,
	}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}
	open := []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusRequiresPaymentMethod,
		PaymentStatusProcessing,
	}
	for _, status := range open {
		if status.IsTerminal() {
			t.Errorf("expected %s to be open", status)
		}
	}
}

func TestBookingStatusCountsAgainstCapacity(t *testing.T) {
	if !BookingStatusReserved.CountsAgainstCapacity() {
		t.Error("reserved bookings must hold seats")
	}
	if !BookingStatusConfirmed.CountsAgainstCapacity() {
		t.Error("confirmed bookings must hold seats")
	}
	if BookingStatusCancelled.CountsAgainstCapacity() {
		t.Error("cancelled bookings must release seats")
	}
	if BookingStatusUsed.CountsAgainstCapacity() {
		t.Error("used bookings must not hold seats")
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusCancelled, BookingStatusUsed} {
		if !status.IsTerminal() {
			t.Errorf("%s must be terminal", status)
		}
	}
	for _, status := range []BookingStatus{BookingStatusReserved, BookingStatusConfirmed} {
		if status.IsTerminal() {
			t.Errorf("%s must not be terminal", status)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{in: "usd", want: CurrencyUSD},
		{in: "USD", want: CurrencyUSD},
		{in: "", want: CurrencyUSD},
		{in: "eur", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseCurrency(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCurrency(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCurrency(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCurrency(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("bank_transfer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != PaymentMethodBankTransfer {
		t.Fatalf("expected bank_transfer, got %s", method)
	}
	if _, err := ParsePaymentMethod("cash"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}
