// Package storage selects the repository implementations for the configured driver.
package storage

import (
	"context"
	"fmt"

	"payout/internal/config"
	"payout/internal/repositories"
	"payout/internal/repositories/memory"

	"gorm.io/gorm"
)

// Storage bundles the repositories of one driver.
type Storage struct {
	Driver       string
	Stores       repositories.StoreRepository
	Payments     repositories.PaymentRepository
	FeeSchedules repositories.FeeScheduleRepository

	db *gorm.DB
}

// Open connects to the configured driver. The memory driver keeps nothing
// across restarts and suits local runs and demos.
func Open(cfg *config.Config) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return &Storage{
			Driver:       config.StorageMemory,
			Stores:       memory.NewStoreRepository(),
			Payments:     memory.NewPaymentRepository(),
			FeeSchedules: memory.NewFeeScheduleRepository(),
		}, nil
	case config.StoragePostgres:
		db, err := repositories.InitDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		return FromDB(db), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
}

// FromDB wraps an open gorm connection.
func FromDB(db *gorm.DB) *Storage {
	return &Storage{
		Driver:       config.StoragePostgres,
		Stores:       repositories.NewStoreRepository(db),
		Payments:     repositories.NewPaymentRepository(db),
		FeeSchedules: repositories.NewFeeScheduleRepository(db),
		db:           db,
	}
}

// DB returns the gorm connection, or nil for the memory driver.
func (s *Storage) DB() *gorm.DB {
	return s.db
}

// Ping checks the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return repositories.CloseDB(s.db)
}
