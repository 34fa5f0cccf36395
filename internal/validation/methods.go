package validation

import (
	"fmt"
	"sort"
	"strings"

	domainerrors "payout/internal/errors"
	"payout/internal/models"

	"github.com/shopspring/decimal"
)

// Validator defines validation methods
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator. The first error for a field wins.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks if a value is not empty
func (v *Validator) Required(field string, value interface{}) {
	if value == nil {
		v.AddError(field, "must not be nil")
		return
	}

	switch val := value.(type) {
	case string:
		v.Check(strings.TrimSpace(val) != "", field, "must not be empty")
	case uint:
		v.Check(val != 0, field, "must not be zero")
	case int:
		v.Check(val != 0, field, "must not be zero")
	case []uint:
		v.Check(len(val) > 0, field, "must contain at least one item")
	}
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field string, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// Positive checks that an amount is greater than zero
func (v *Validator) Positive(field string, value decimal.Decimal) {
	v.Check(value.IsPositive(), field, "must be greater than zero")
}

// NonNegative checks that a rate is zero or more
func (v *Validator) NonNegative(field string, value decimal.Decimal) {
	v.Check(!value.IsNegative(), field, "must not be negative")
}

// Scale checks that a value has at most models.AmountScale decimal places
func (v *Validator) Scale(field string, value decimal.Decimal) {
	v.Check(models.FitsScale(value), field, fmt.Sprintf("must not have more than %d decimal places", models.AmountScale))
}

// PresentDecimal checks that an optional decimal was supplied
func (v *Validator) PresentDecimal(field string, value decimal.NullDecimal) {
	v.Check(value.Valid, field, "is required")
}

// IDs checks a batch of identifiers: bounded size, no zero ids, no repeats.
func (v *Validator) IDs(field string, ids []uint, max int) {
	if len(ids) > max {
		v.AddError(field, fmt.Sprintf("must not contain more than %d items", max))
		return
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			v.AddError(field, "must not contain zero ids")
			return
		}
		if _, dup := seen[id]; dup {
			v.AddError(field, fmt.Sprintf("contains duplicate id %d", id))
			return
		}
		seen[id] = struct{}{}
	}
}

// Err returns nil when valid, otherwise an invalid-input error listing every
// field in name order.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make([]string, 0, len(v.Errors))
	for f := range v.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+v.Errors[f])
	}
	return domainerrors.ErrInvalidInput.Withf("%s", strings.Join(parts, "; "))
}
