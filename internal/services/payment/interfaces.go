package payment

import (
	"context"
	"payout/internal/models"
)

// StoreLookup resolves the store a payment is accepted for.
type StoreLookup interface {
	Get(ctx context.Context, id uint) (*models.Store, error)
}

// FeeSource supplies the fee schedule snapshot used at acceptance.
type FeeSource interface {
	Current() models.FeeSchedule
}
