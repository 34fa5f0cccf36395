package memory

import (
	"context"
	"sync"
	"time"

	"payout/internal/models"
	"payout/internal/repositories"
)

type FeeScheduleRepository struct {
	mu       sync.Mutex
	versions []models.FeeSchedule
}

func NewFeeScheduleRepository() *FeeScheduleRepository {
	return &FeeScheduleRepository{}
}

func (r *FeeScheduleRepository) Save(_ context.Context, schedule *models.FeeSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule.Version = uint(len(r.versions) + 1)
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}
	r.versions = append(r.versions, *schedule)
	return nil
}

func (r *FeeScheduleRepository) Latest(_ context.Context) (*models.FeeSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.versions) == 0 {
		return nil, repositories.ErrFeeScheduleNotFound
	}
	latest := r.versions[len(r.versions)-1]
	return &latest, nil
}
