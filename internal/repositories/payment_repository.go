package repositories

import (
	"context"
	"payout/internal/models"
	"time"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Core operations
	Create(ctx context.Context, payment *models.Payment) error
	Save(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)

	// FindByStoreAndStatus returns the store's payments in the given status ordered by id.
	FindByStoreAndStatus(ctx context.Context, storeID uint, status models.PaymentStatus) ([]models.Payment, error)

	// ListByStore pages through a store's payments. An empty status matches every status.
	ListByStore(ctx context.Context, storeID uint, status models.PaymentStatus, limit, offset int) ([]models.Payment, int64, error)

	// Conditional updates. Both return the number of rows changed, which is zero
	// when the payment is missing or no longer in the expected status.
	TransitionStatus(ctx context.Context, id uint, from, to models.PaymentStatus) (int64, error)
	MarkPaid(ctx context.Context, id uint, reference string, paidAt time.Time) (int64, error)

	// ExecuteInTransaction runs fn against a transactional repository. The
	// transaction is rolled back when fn returns an error.
	ExecuteInTransaction(ctx context.Context, fn func(PaymentRepository) error) error
}
