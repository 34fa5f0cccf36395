package repositories

import (
	"context"
	"payout/internal/models"
)

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id uint) (*models.Store, error)
	List(ctx context.Context) ([]models.Store, error)
}
