package validation

import (
	"errors"
	"testing"

	domainerrors "payout/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Valid(t *testing.T) {
	v := New()
	v.Payment(1, decimal.NewFromInt(10))
	v.Store("Shop", decimal.Zero)
	v.FeeSchedule(present(decimal.Zero), present(decimal.RequireFromString("0.05")), present(decimal.RequireFromString("0.02")))
	v.PaymentBatch([]uint{1, 2, 3})

	assert.True(t, v.Valid())
	assert.NoError(t, v.Err())
}

func TestValidator_Errors(t *testing.T) {
	tests := []struct {
		name  string
		run   func(v *Validator)
		field string
	}{
		{"zero amount", func(v *Validator) { v.Payment(1, decimal.Zero) }, "amount"},
		{"missing store", func(v *Validator) { v.Payment(0, decimal.NewFromInt(1)) }, "store_id"},
		{"negative fee c", func(v *Validator) { v.Store("Shop", decimal.NewFromInt(-1)) }, "fee_c"},
		{"blank name", func(v *Validator) { v.Store("  ", decimal.Zero) }, "name"},
		{"negative d", func(v *Validator) { v.FeeSchedule(present(decimal.Zero), present(decimal.Zero), present(decimal.NewFromInt(-1))) }, "d"},
		{"missing b", func(v *Validator) { v.FeeSchedule(present(decimal.Zero), decimal.NullDecimal{}, present(decimal.Zero)) }, "b"},
		{"amount too precise", func(v *Validator) { v.Payment(1, decimal.RequireFromString("0.0000001")) }, "amount"},
		{"fee c too precise", func(v *Validator) { v.Store("Shop", decimal.RequireFromString("0.1234567")) }, "fee_c"},
		{"duplicate id", func(v *Validator) { v.PaymentBatch([]uint{4, 4}) }, "payment_ids"},
		{"zero id", func(v *Validator) { v.PaymentBatch([]uint{0}) }, "payment_ids"},
		{"oversized batch", func(v *Validator) { v.PaymentBatch(make([]uint, MaxBatchSize+1)) }, "payment_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			tt.run(v)
			require.False(t, v.Valid())
			assert.Contains(t, v.Errors, tt.field)

			err := v.Err()
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	v.AddError("amount", "first")
	v.AddError("amount", "second")
	assert.Equal(t, "first", v.Errors["amount"])
}

func present(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func TestValidator_FeeScheduleRequiresEveryField(t *testing.T) {
	v := New()
	v.FeeSchedule(present(decimal.NewFromInt(5)), decimal.NullDecimal{}, decimal.NullDecimal{})

	require.False(t, v.Valid())
	assert.Equal(t, "is required", v.Errors["b"])
	assert.Equal(t, "is required", v.Errors["d"])
	assert.NotContains(t, v.Errors, "a")
}

func TestValidator_ScaleAcceptsTrailingZeros(t *testing.T) {
	v := New()
	v.Payment(1, decimal.RequireFromString("12.500000000"))

	assert.True(t, v.Valid())
}
