package storage

import (
	"context"
	"testing"

	"payout/internal/config"
	"payout/internal/models"
	"payout/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(&config.Config{Storage: config.StorageMemory})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, config.StorageMemory, s.Driver)
	assert.Nil(t, s.DB())
	assert.NoError(t, s.Ping(context.Background()))

	store := &models.Store{Name: "Shop", FeeC: decimal.Zero}
	require.NoError(t, s.Stores.Create(context.Background(), store))
	assert.NotZero(t, store.ID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{Storage: "mongo"})
	assert.Error(t, err)
}

func TestFromDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repositories.Migrate(db))

	s := FromDB(db)
	defer s.Close()

	assert.Equal(t, config.StoragePostgres, s.Driver)
	assert.NoError(t, s.Ping(context.Background()))

	_, err = s.FeeSchedules.Latest(context.Background())
	assert.ErrorIs(t, err, repositories.ErrFeeScheduleNotFound)
}
