package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainerrors "payout/internal/errors"
	"payout/internal/models"
	"payout/internal/repositories/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) CacheStore(ctx context.Context, store *models.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockCache) GetStore(ctx context.Context, id uint) (*models.Store, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Store), args.Error(1)
	}
	return nil, args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_RegisterAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStoreRepository(), nil, quietLogger())

	created, err := svc.Register(ctx, "  Corner Shop ", decimal.RequireFromString("0.03"))
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", created.Name)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.FeeC.Equal(decimal.RequireFromString("0.03")))

	stores, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := NewService(memory.NewStoreRepository(), nil, quietLogger())

	_, err := svc.Register(context.Background(), "", decimal.Zero)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))

	_, err = svc.Register(context.Background(), "Shop", decimal.NewFromInt(-1))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestService_GetUnknown(t *testing.T) {
	svc := NewService(memory.NewStoreRepository(), nil, quietLogger())

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestService_GetUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := new(MockCache)
	repo := memory.NewStoreRepository()
	svc := NewService(repo, cache, quietLogger())

	cached := &models.Store{ID: 9, Name: "Cached", FeeC: decimal.Zero}
	cache.On("GetStore", mock.Anything, uint(9)).Return(cached, nil).Once()

	got, err := svc.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Name)
	cache.AssertExpectations(t)
}

func TestService_GetFallsBackOnCacheError(t *testing.T) {
	ctx := context.Background()
	cache := new(MockCache)
	repo := memory.NewStoreRepository()
	require.NoError(t, repo.Create(ctx, &models.Store{Name: "Durable", FeeC: decimal.Zero}))

	cache.On("GetStore", mock.Anything, uint(1)).Return(nil, errors.New("redis down"))
	cache.On("CacheStore", mock.Anything, mock.AnythingOfType("*models.Store")).Return(nil)

	svc := NewService(repo, cache, quietLogger())
	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Durable", got.Name)
	cache.AssertCalled(t, "CacheStore", mock.Anything, mock.AnythingOfType("*models.Store"))
}
