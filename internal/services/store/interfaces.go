package store

import (
	"context"
	"payout/internal/models"
)

// Cache is the optional read-through cache in front of the store repository.
// GetStore returns nil without error on a miss.
type Cache interface {
	CacheStore(ctx context.Context, store *models.Store) error
	GetStore(ctx context.Context, id uint) (*models.Store, error)
}
