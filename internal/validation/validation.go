package validation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// validateMoney returns a field message for an amount that is not positive
// or carries more than two decimals, or "" when the amount is valid.
func validateMoney(amount decimal.Decimal) string {
	if !amount.IsPositive() {
		return "must be positive"
	}
	if !amount.Equal(amount.Truncate(2)) {
		return "cannot have more than two decimal places"
	}
	return ""
}
