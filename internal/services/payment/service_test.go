package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	domainerrors "payout/internal/errors"
	"payout/internal/events"
	"payout/internal/models"
	"payout/internal/repositories"
	"payout/internal/repositories/memory"
	"payout/internal/services/fee"
	"payout/internal/services/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	repositories.PaymentRepository
	creates atomic.Int32
}

func (r *countingRepo) Create(ctx context.Context, p *models.Payment) error {
	r.creates.Add(1)
	return r.PaymentRepository.Create(ctx, p)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evs ...events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evs...)
	return p.err
}

type fixture struct {
	svc       *Service
	repo      *countingRepo
	stores    *store.Service
	schedule  *fee.Schedule
	publisher *recordingPublisher
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	schedule, err := fee.NewSchedule(models.FeeSchedule{Version: 1, A: dec("10"), B: dec("0.05"), D: dec("0.02")}, nil, log)
	require.NoError(t, err)

	repo := &countingRepo{PaymentRepository: memory.NewPaymentRepository()}
	stores := store.NewService(memory.NewStoreRepository(), nil, log)
	pub := &recordingPublisher{}

	return &fixture{
		svc:       NewService(repo, stores, schedule, pub, nil, log),
		repo:      repo,
		stores:    stores,
		schedule:  schedule,
		publisher: pub,
	}
}

func (f *fixture) store(t *testing.T, feeC string) *models.Store {
	t.Helper()
	s, err := f.stores.Register(context.Background(), "Shop", dec(feeC))
	require.NoError(t, err)
	return s
}

func (f *fixture) accept(t *testing.T, storeID uint, amount string) *models.Payment {
	t.Helper()
	p, err := f.svc.AcceptPayment(context.Background(), storeID, dec(amount))
	require.NoError(t, err)
	return p
}

func TestAcceptPayment_Scenario(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, "0.03")

	p := f.accept(t, s.ID, "1000")

	assert.Equal(t, models.PaymentStatusAccepted, p.Status)
	assert.True(t, p.AvailableAmount.Equal(dec("910")))
	assert.True(t, p.TempBlockingD.Equal(dec("20")))
	assert.True(t, p.Fees().Equal(dec("90")))
	assert.Equal(t, uint(1), p.FeeScheduleVersion)

	stored, err := f.svc.GetPayment(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stored.AvailableAmount.Equal(dec("910")))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.PaymentAccepted, f.publisher.events[0].Type)
}

func TestAcceptPayment_UnknownStoreWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AcceptPayment(context.Background(), 42, dec("100"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Equal(t, int32(0), f.repo.creates.Load())
	assert.Empty(t, f.publisher.events)
}

func TestAcceptPayment_InvalidAmount(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, "0")

	for _, amount := range []string{"0", "-1", "0.0000001"} {
		_, err := f.svc.AcceptPayment(context.Background(), s.ID, dec(amount))
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput), amount)
	}
	assert.Equal(t, int32(0), f.repo.creates.Load())
}

func TestAcceptPayment_ScheduleChangeOnlyAffectsLaterPayments(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, "0")

	before := f.accept(t, s.ID, "100")
	_, err := f.schedule.Set(context.Background(), dec("0"), dec("0"), dec("0"))
	require.NoError(t, err)
	after := f.accept(t, s.ID, "100")

	reloaded, err := f.svc.GetPayment(context.Background(), before.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.AvailableAmount.Equal(dec("85")))
	assert.True(t, after.AvailableAmount.Equal(dec("100")))
	assert.Equal(t, uint(2), after.FeeScheduleVersion)
}

func TestAcceptPayment_PublishFailureIsNotReturned(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	s := f.store(t, "0")

	p, err := f.svc.AcceptPayment(context.Background(), s.ID, dec("50"))
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestAdvance_ForwardOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.store(t, "0")
	p := f.accept(t, s.ID, "100")

	// cannot skip PROCESSED
	_, err := f.svc.CompletePayments(ctx, []uint{p.ID})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	updated, err := f.svc.ProcessPayments(ctx, []uint{p.ID})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, models.PaymentStatusProcessed, updated[0].Status)

	// processing twice is not a silent no-op
	_, err = f.svc.ProcessPayments(ctx, []uint{p.ID})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	_, err = f.svc.CompletePayments(ctx, []uint{p.ID})
	require.NoError(t, err)

	// a COMPLETED payment cannot be moved back to PROCESSED
	_, err = f.svc.ProcessPayments(ctx, []uint{p.ID})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	got, err := f.svc.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, got.Status)
}

func TestAdvance_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.store(t, "0")
	first := f.accept(t, s.ID, "100")
	second := f.accept(t, s.ID, "200")

	_, err := f.svc.ProcessPayments(ctx, []uint{first.ID, 999, second.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	for _, id := range []uint{first.ID, second.ID} {
		p, err := f.svc.GetPayment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusAccepted, p.Status, "payment %d must be untouched", id)
	}

	// one payment in the wrong status blocks the whole batch
	_, err = f.svc.ProcessPayments(ctx, []uint{first.ID})
	require.NoError(t, err)
	_, err = f.svc.CompletePayments(ctx, []uint{first.ID, second.ID})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	p, err := f.svc.GetPayment(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusProcessed, p.Status)
}

func TestAdvance_BatchInputs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.store(t, "0")
	p := f.accept(t, s.ID, "100")

	updated, err := f.svc.ProcessPayments(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, updated)

	_, err = f.svc.ProcessPayments(ctx, []uint{p.ID, p.ID})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestAdvance_ConcurrentBatchesOnSamePayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.store(t, "0")
	p := f.accept(t, s.ID, "100")

	var wg sync.WaitGroup
	var succeeded atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.ProcessPayments(ctx, []uint{p.ID}); err == nil {
				succeeded.Add(1)
			} else {
				assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), succeeded.Load())
}

func TestGetPayment_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetPayment(context.Background(), 7)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestListPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.store(t, "0")
	a := f.accept(t, s.ID, "100")
	f.accept(t, s.ID, "200")
	_, err := f.svc.ProcessPayments(ctx, []uint{a.ID})
	require.NoError(t, err)

	all, total, err := f.svc.ListPayments(ctx, s.ID, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	processed, total, err := f.svc.ListPayments(ctx, s.ID, models.PaymentStatusProcessed, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, a.ID, processed[0].ID)

	_, _, err = f.svc.ListPayments(ctx, 99, "", 10, 0)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
