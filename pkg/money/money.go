package money

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
)

// DollarsToCents converts a dollar amount to minor units, rounding half up so
// 49.999 becomes 5000 rather than truncating donor intent.
func DollarsToCents(amount decimal.Decimal) int {
	return int(amount.Shift(2).Round(0).IntPart())
}

// CentsToDollars renders minor units back to a dollar decimal for display.
func CentsToDollars(cents int) decimal.Decimal {
	return decimal.NewFromInt(int64(cents)).Shift(-2)
}

// ParseDollarAmount accepts numeric strings with an optional currency symbol
// ("$25", "25.50") and returns the minor-unit amount.
func ParseDollarAmount(raw string) (int, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must contain a number")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount")
	}
	if amount.IsNegative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return DollarsToCents(amount), nil
}

// TicketCostFromCostString extracts the per-ticket price from an event's
// display cost. Free events (or costs without a leading dollar sign) have no
// ticket price.
func TicketCostFromCostString(cost string) *int {
	trimmed := strings.TrimSpace(cost)
	if trimmed == "" || strings.EqualFold(trimmed, "free") || !strings.HasPrefix(trimmed, "$") {
		return nil
	}
	cents, err := ParseDollarAmount(trimmed)
	if err != nil || cents <= 0 {
		return nil
	}
	return &cents
}
