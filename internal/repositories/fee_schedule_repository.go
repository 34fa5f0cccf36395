package repositories

import (
	"context"
	"errors"
	"fmt"
	"payout/internal/models"

	"gorm.io/gorm"
)

// FeeScheduleRepository stores fee schedule versions. Save always appends a new version.
type FeeScheduleRepository interface {
	Save(ctx context.Context, schedule *models.FeeSchedule) error
	Latest(ctx context.Context) (*models.FeeSchedule, error)
}

type feeScheduleRepository struct {
	db *gorm.DB
}

func NewFeeScheduleRepository(db *gorm.DB) FeeScheduleRepository {
	return &feeScheduleRepository{db: db}
}

func (r *feeScheduleRepository) Save(ctx context.Context, schedule *models.FeeSchedule) error {
	schedule.Version = 0
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return fmt.Errorf("failed to save fee schedule: %w", err)
	}
	return nil
}

func (r *feeScheduleRepository) Latest(ctx context.Context) (*models.FeeSchedule, error) {
	var schedule models.FeeSchedule
	if err := r.db.WithContext(ctx).Order("version DESC").First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get fee schedule: %w", err)
	}
	return &schedule, nil
}
