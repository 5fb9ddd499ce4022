package enums

import (
	"fmt"
	"strings"
)

// Currency is the ISO-4217 code a payment is denominated in. Donations and
// bookings default to USD today.
type Currency string

const (
	CurrencyUSD Currency = "usd"
)

func (c Currency) String() string {
	return string(c)
}

func (c Currency) IsValid() bool {
	return c == CurrencyUSD
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(value string) (Currency, error) {
	normalized := Currency(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return CurrencyUSD, nil
	}
	if !normalized.IsValid() {
		return "", fmt.Errorf("unsupported currency %q", value)
	}
	return normalized, nil
}
