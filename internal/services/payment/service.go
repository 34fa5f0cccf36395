package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainerrors "payout/internal/errors"
	"payout/internal/events"
	"payout/internal/metrics"
	"payout/internal/models"
	"payout/internal/repositories"
	"payout/internal/services/fee"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo      repositories.PaymentRepository
	stores    StoreLookup
	fees      FeeSource
	publisher events.Publisher
	metrics   metrics.Collector
	log       *slog.Logger
}

// NewService creates a payment service. publisher, collector and log are optional.
func NewService(
	repo repositories.PaymentRepository,
	stores StoreLookup,
	fees FeeSource,
	publisher events.Publisher,
	collector metrics.Collector,
	log *slog.Logger,
) *Service {
	if repo == nil {
		panic("repo is required")
	}
	if stores == nil {
		panic("store lookup is required")
	}
	if fees == nil {
		panic("fee source is required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		repo:      repo,
		stores:    stores,
		fees:      fees,
		publisher: publisher,
		metrics:   collector,
		log:       log,
	}
}

// AcceptPayment creates an ACCEPTED payment for storeID with fees fixed from
// the current schedule.
func (s *Service) AcceptPayment(ctx context.Context, storeID uint, amount decimal.Decimal) (*models.Payment, error) {
	defer s.observe("accept", time.Now())

	if !amount.IsPositive() {
		return nil, s.fail("accept", domainerrors.ErrInvalidAmount.Withf("got %s", amount.String()))
	}
	if !models.FitsScale(amount) {
		return nil, s.fail("accept", domainerrors.ErrTooManyDecimals.Withf("amount %s", amount.String()))
	}

	store, err := s.stores.Get(ctx, storeID)
	if err != nil {
		return nil, s.fail("accept", err)
	}

	acc, err := fee.ComputeAcceptance(amount, store.FeeC, s.fees.Current())
	if err != nil {
		return nil, s.fail("accept", err)
	}

	payment := &models.Payment{
		StoreID:            store.ID,
		Amount:             amount,
		AvailableAmount:    acc.AvailableAmount,
		TempBlockingD:      acc.TempBlockingD,
		Status:             models.PaymentStatusAccepted,
		FeeScheduleVersion: acc.ScheduleVersion,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, s.fail("accept", fmt.Errorf("failed to create payment: %w", err))
	}

	s.metrics.RecordAccepted(store.ID, amount, acc.AvailableAmount)
	s.log.Info("payment accepted",
		"payment_id", payment.ID,
		"store_id", store.ID,
		"amount", amount.String(),
		"available_amount", acc.AvailableAmount.String(),
		"fee_schedule_version", acc.ScheduleVersion,
	)
	s.publish(ctx, events.PaymentAccepted, []models.Payment{*payment})
	return payment, nil
}

// ProcessPayments moves every payment in ids from ACCEPTED to PROCESSED.
func (s *Service) ProcessPayments(ctx context.Context, ids []uint) ([]models.Payment, error) {
	return s.advance(ctx, "process", ids, models.PaymentStatusProcessed)
}

// CompletePayments moves every payment in ids from PROCESSED to COMPLETED.
func (s *Service) CompletePayments(ctx context.Context, ids []uint) ([]models.Payment, error) {
	return s.advance(ctx, "complete", ids, models.PaymentStatusCompleted)
}

func (s *Service) advance(ctx context.Context, op string, ids []uint, to models.PaymentStatus) ([]models.Payment, error) {
	defer s.observe(op, time.Now())

	if len(ids) == 0 {
		return []models.Payment{}, nil
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, s.fail(op, domainerrors.ErrDuplicatePaymentID.Withf("id %d", id))
		}
		seen[id] = struct{}{}
	}

	from := predecessor[to]
	var updated []models.Payment

	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.PaymentRepository) error {
		loaded := make([]models.Payment, 0, len(ids))
		for _, id := range ids {
			p, err := tx.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, repositories.ErrPaymentNotFound) {
					return domainerrors.ErrPaymentNotFound.Withf("id %d", id)
				}
				return fmt.Errorf("failed to load payment %d: %w", id, err)
			}
			if !CanTransition(p.Status, to) {
				return domainerrors.ErrInvalidTransition.Withf("payment %d is %s, cannot move to %s", id, p.Status, to)
			}
			loaded = append(loaded, *p)
		}

		for i := range loaded {
			n, err := tx.TransitionStatus(ctx, loaded[i].ID, from, to)
			if err != nil {
				return fmt.Errorf("failed to update payment %d: %w", loaded[i].ID, err)
			}
			if n == 0 {
				return domainerrors.ErrInvalidTransition.Withf("payment %d left %s concurrently", loaded[i].ID, from)
			}
			loaded[i].Status = to
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.metrics.RecordTransition(string(to), len(updated))
	s.log.Info("payments advanced", "operation", op, "status", to, "count", len(updated))
	s.publish(ctx, eventFor(to), updated)
	return updated, nil
}

func (s *Service) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, domainerrors.ErrPaymentNotFound.Withf("id %d", id)
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// ListPayments pages through a store's payments, optionally filtered by status.
func (s *Service) ListPayments(ctx context.Context, storeID uint, status models.PaymentStatus, limit, offset int) ([]models.Payment, int64, error) {
	if _, err := s.stores.Get(ctx, storeID); err != nil {
		return nil, 0, err
	}

	payments, total, err := s.repo.ListByStore(ctx, storeID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

// publish is best effort: the state change is already committed.
func (s *Service) publish(ctx context.Context, typ events.EventType, payments []models.Payment) {
	if len(payments) == 0 {
		return
	}
	now := time.Now().UTC()
	batch := make([]events.Event, 0, len(payments))
	for _, p := range payments {
		batch = append(batch, events.Event{
			Type:            typ,
			PaymentID:       p.ID,
			StoreID:         p.StoreID,
			Amount:          p.Amount,
			AvailableAmount: p.AvailableAmount,
			OccurredAt:      now,
		})
	}
	if err := s.publisher.Publish(ctx, batch...); err != nil {
		s.log.Error("failed to publish payment events", "type", typ, "count", len(batch), "error", err)
	}
}

func (s *Service) fail(op string, err error) error {
	s.metrics.RecordError(op, domainerrors.CodeOf(err))
	return err
}

func (s *Service) observe(op string, start time.Time) {
	s.metrics.ObserveDuration(op, time.Since(start))
}

func eventFor(status models.PaymentStatus) events.EventType {
	switch status {
	case models.PaymentStatusProcessed:
		return events.PaymentProcessed
	case models.PaymentStatusCompleted:
		return events.PaymentCompleted
	case models.PaymentStatusPaid:
		return events.PaymentPaid
	}
	return events.PaymentAccepted
}
