package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainerrors "payout/internal/errors"
	"payout/internal/events"
	"payout/internal/metrics"
	"payout/internal/models"
	"payout/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreLookup resolves the store being settled.
type StoreLookup interface {
	Get(ctx context.Context, id uint) (*models.Store, error)
}

// PaidPayment is one line of a payout.
type PaidPayment struct {
	ID     uint            `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// Payout reports what a MakePayments call paid. Reference is empty when
// nothing was paid.
type Payout struct {
	Amount    decimal.Decimal `json:"amount"`
	Payments  []PaidPayment   `json:"payments"`
	Reference string          `json:"reference,omitempty"`
}

type Service struct {
	repo      repositories.PaymentRepository
	stores    StoreLookup
	publisher events.Publisher
	metrics   metrics.Collector
	log       *slog.Logger
	locks     *storeLocks
	now       func() time.Time
}

func NewService(
	repo repositories.PaymentRepository,
	stores StoreLookup,
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
		publisher: publisher,
		metrics:   collector,
		log:       log,
		locks:     newStoreLocks(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// MakePayments pays out the store's smallest completed payments, at most
// BatchSize per call. Calls for the same store are serialised in process;
// across processes each payment is marked PAID only if it is still
// COMPLETED, and any lost race aborts the whole payout with ErrConflict.
func (s *Service) MakePayments(ctx context.Context, storeID uint) (*Payout, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDuration("payout", time.Since(start)) }()

	if _, err := s.stores.Get(ctx, storeID); err != nil {
		return nil, s.fail(err)
	}

	unlock := s.locks.Lock(storeID)
	defer unlock()

	completed, err := s.repo.FindByStoreAndStatus(ctx, storeID, models.PaymentStatusCompleted)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to load completed payments: %w", err))
	}

	selection := Select(completed, BatchSize)
	if len(selection.Payments) == 0 {
		return &Payout{Amount: decimal.Zero, Payments: []PaidPayment{}}, nil
	}

	reference := uuid.NewString()
	paidAt := s.now()

	err = s.repo.ExecuteInTransaction(ctx, func(tx repositories.PaymentRepository) error {
		for _, p := range selection.Payments {
			n, err := tx.MarkPaid(ctx, p.ID, reference, paidAt)
			if err != nil {
				return fmt.Errorf("failed to mark payment %d paid: %w", p.ID, err)
			}
			if n == 0 {
				return domainerrors.ErrSettlementConflict.Withf("payment %d is no longer %s", p.ID, models.PaymentStatusCompleted)
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(err)
	}

	payout := &Payout{
		Amount:    selection.Total,
		Payments:  make([]PaidPayment, 0, len(selection.Payments)),
		Reference: reference,
	}
	for _, p := range selection.Payments {
		payout.Payments = append(payout.Payments, PaidPayment{ID: p.ID, Amount: p.AvailableAmount})
	}

	s.metrics.RecordPayout(storeID, len(payout.Payments), payout.Amount)
	s.metrics.RecordTransition(string(models.PaymentStatusPaid), len(payout.Payments))
	s.log.Info("payout made",
		"store_id", storeID,
		"reference", reference,
		"amount", payout.Amount.String(),
		"payments", len(payout.Payments),
	)
	s.publishPaid(ctx, selection.Payments, reference, paidAt)
	return payout, nil
}

func (s *Service) publishPaid(ctx context.Context, payments []models.Payment, reference string, paidAt time.Time) {
	batch := make([]events.Event, 0, len(payments))
	for _, p := range payments {
		batch = append(batch, events.Event{
			Type:            events.PaymentPaid,
			PaymentID:       p.ID,
			StoreID:         p.StoreID,
			Amount:          p.Amount,
			AvailableAmount: p.AvailableAmount,
			Reference:       reference,
			OccurredAt:      paidAt,
		})
	}
	if err := s.publisher.Publish(ctx, batch...); err != nil {
		s.log.Error("failed to publish payout events", "reference", reference, "error", err)
	}
}

func (s *Service) fail(err error) error {
	s.metrics.RecordError("payout", domainerrors.CodeOf(err))
	return err
}
