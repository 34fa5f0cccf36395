package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"payout/internal/models"
	"payout/internal/repositories"
)

type StoreRepository struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[uint]models.Store
}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{rows: make(map[uint]models.Store)}
}

func (r *StoreRepository) Create(_ context.Context, store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	store.ID = r.nextID
	if store.CreatedAt.IsZero() {
		store.CreatedAt = time.Now().UTC()
	}
	r.rows[store.ID] = *store
	return nil
}

func (r *StoreRepository) FindByID(_ context.Context, id uint) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrStoreNotFound
	}
	return &store, nil
}

func (r *StoreRepository) List(_ context.Context) ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stores := make([]models.Store, 0, len(r.rows))
	for _, s := range r.rows {
		stores = append(stores, s)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores, nil
}
