package fee

import (
	domainerrors "payout/internal/errors"
	"payout/internal/models"

	"github.com/shopspring/decimal"
)

// Acceptance holds the amounts fixed on a payment when it is accepted.
type Acceptance struct {
	AvailableAmount decimal.Decimal
	TempBlockingD   decimal.Decimal
	TotalFees       decimal.Decimal
	ScheduleVersion uint
}

// ComputeAcceptance applies the schedule and the store's C rate to amount.
// Inputs are limited to models.AmountScale places, so every product is exact
// at twice that scale and nothing is rounded.
// Negative results are not clamped: a payment whose fees exceed its amount
// gets a negative available amount and is never paid out.
func ComputeAcceptance(amount, storeFeeC decimal.Decimal, schedule models.FeeSchedule) (Acceptance, error) {
	if !amount.IsPositive() {
		return Acceptance{}, domainerrors.ErrInvalidAmount.Withf("got %s", amount.String())
	}
	if storeFeeC.IsNegative() {
		return Acceptance{}, domainerrors.ErrInvalidFeeRate.Withf("store fee c %s", storeFeeC.String())
	}
	if !models.FitsScale(amount) || !models.FitsScale(storeFeeC) {
		return Acceptance{}, domainerrors.ErrTooManyDecimals.Withf("amount %s, store fee c %s", amount.String(), storeFeeC.String())
	}

	bFee := amount.Mul(schedule.B)
	cFee := amount.Mul(storeFeeC)
	totalFees := schedule.A.Add(bFee).Add(cFee)

	return Acceptance{
		AvailableAmount: amount.Sub(totalFees),
		TempBlockingD:   amount.Mul(schedule.D),
		TotalFees:       totalFees,
		ScheduleVersion: schedule.Version,
	}, nil
}
