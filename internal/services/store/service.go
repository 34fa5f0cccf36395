// Package store registers stores and resolves them for payment acceptance.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	domainerrors "payout/internal/errors"
	"payout/internal/models"
	"payout/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Service resolves stores through the repository. Stores never change after
// registration, so cached copies need no invalidation.
type Service struct {
	repo  repositories.StoreRepository
	cache Cache
	group singleflight.Group
	log   *slog.Logger
}

// NewService creates a store service. cache may be nil.
func NewService(repo repositories.StoreRepository, cache Cache, log *slog.Logger) *Service {
	if repo == nil {
		panic("repo is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, cache: cache, log: log}
}

// Register creates a store with its C fee rate.
func (s *Service) Register(ctx context.Context, name string, feeC decimal.Decimal) (*models.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrInvalidInput.Withf("store name is required")
	}
	if feeC.IsNegative() {
		return nil, domainerrors.ErrInvalidFeeRate.Withf("fee_c %s", feeC.String())
	}
	if !models.FitsScale(feeC) {
		return nil, domainerrors.ErrTooManyDecimals.Withf("fee_c %s", feeC.String())
	}

	store := &models.Store{Name: name, FeeC: feeC}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to register store: %w", err)
	}

	s.cacheStore(ctx, store)
	s.log.Info("store registered", "store_id", store.ID, "fee_c", feeC.String())
	return store, nil
}

// Get returns the store with id or ErrStoreNotFound.
func (s *Service) Get(ctx context.Context, id uint) (*models.Store, error) {
	if s.cache != nil {
		cached, err := s.cache.GetStore(ctx, id)
		if err != nil {
			s.log.Warn("store cache read failed", "store_id", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound.Withf("id %d", id)
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	store := *v.(*models.Store)
	s.cacheStore(ctx, &store)
	return &store, nil
}

func (s *Service) List(ctx context.Context) ([]models.Store, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (s *Service) cacheStore(ctx context.Context, store *models.Store) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheStore(ctx, store); err != nil {
		s.log.Warn("store cache write failed", "store_id", store.ID, "error", err)
	}
}
