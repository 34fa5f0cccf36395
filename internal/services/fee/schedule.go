package fee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	domainerrors "payout/internal/errors"
	"payout/internal/models"
	"payout/internal/repositories"

	"github.com/shopspring/decimal"
)

// Schedule is the process-wide fee schedule. Readers get an immutable
// snapshot; Set swaps in a complete new triple so a concurrent reader never
// observes a mix of old and new values.
type Schedule struct {
	current atomic.Pointer[models.FeeSchedule]
	mu      sync.Mutex // serialises writers
	repo    repositories.FeeScheduleRepository
	log     *slog.Logger
}

// NewSchedule starts from initial. repo may be nil, in which case versions
// are numbered in memory only.
func NewSchedule(initial models.FeeSchedule, repo repositories.FeeScheduleRepository, log *slog.Logger) (*Schedule, error) {
	if err := validate(initial.A, initial.B, initial.D); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Schedule{repo: repo, log: log}
	snapshot := initial
	s.current.Store(&snapshot)
	return s, nil
}

// Current returns the schedule in effect.
func (s *Schedule) Current() models.FeeSchedule {
	return *s.current.Load()
}

// Load replaces the in-memory schedule with the latest persisted version.
// With nothing persisted yet the initial schedule is saved as the first version.
func (s *Schedule) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	latest, err := s.repo.Latest(ctx)
	if errors.Is(err, repositories.ErrFeeScheduleNotFound) {
		first := s.Current()
		if err := s.repo.Save(ctx, &first); err != nil {
			return fmt.Errorf("failed to persist initial fee schedule: %w", err)
		}
		s.current.Store(&first)
		s.log.Info("fee schedule initialised", "version", first.Version)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load fee schedule: %w", err)
	}

	s.current.Store(latest)
	s.log.Info("fee schedule loaded", "version", latest.Version)
	return nil
}

// Set validates and installs a new schedule version.
func (s *Schedule) Set(ctx context.Context, a, b, d decimal.Decimal) (models.FeeSchedule, error) {
	if err := validate(a, b, d); err != nil {
		return models.FeeSchedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := models.FeeSchedule{A: a, B: b, D: d}
	if s.repo != nil {
		if err := s.repo.Save(ctx, &next); err != nil {
			return models.FeeSchedule{}, fmt.Errorf("failed to save fee schedule: %w", err)
		}
	} else {
		next.Version = s.current.Load().Version + 1
		next.CreatedAt = time.Now().UTC()
	}

	s.current.Store(&next)
	s.log.Info("fee schedule updated",
		"version", next.Version,
		"a", a.String(),
		"b", b.String(),
		"d", d.String(),
	)
	return next, nil
}

func validate(a, b, d decimal.Decimal) error {
	if a.IsNegative() || b.IsNegative() || d.IsNegative() {
		return domainerrors.ErrInvalidFeeRate.Withf("a=%s b=%s d=%s", a.String(), b.String(), d.String())
	}
	if !models.FitsScale(a) || !models.FitsScale(b) || !models.FitsScale(d) {
		return domainerrors.ErrTooManyDecimals.Withf("a=%s b=%s d=%s", a.String(), b.String(), d.String())
	}
	return nil
}
