package validation

import "github.com/shopspring/decimal"

// FeeSchedule validates a fee schedule update. All three values are required.
func (v *Validator) FeeSchedule(a, b, d decimal.NullDecimal) {
	for _, f := range []struct {
		name  string
		value decimal.NullDecimal
	}{{"a", a}, {"b", b}, {"d", d}} {
		v.PresentDecimal(f.name, f.value)
		v.NonNegative(f.name, f.value.Decimal)
		v.Scale(f.name, f.value.Decimal)
	}
}

// Store validates a store registration
func (v *Validator) Store(name string, feeC decimal.Decimal) {
	v.Required("name", name)
	v.MaxLength("name", name, MaxStoreNameLength)
	v.NonNegative("fee_c", feeC)
	v.Scale("fee_c", feeC)
}

// Payment validates a payment acceptance
func (v *Validator) Payment(storeID uint, amount decimal.Decimal) {
	v.Required("store_id", storeID)
	v.Positive("amount", amount)
	v.Scale("amount", amount)
}

// PaymentBatch validates the ids of a process or complete request
func (v *Validator) PaymentBatch(ids []uint) {
	v.IDs("payment_ids", ids, MaxBatchSize)
}
