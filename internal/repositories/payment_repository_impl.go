package repositories

import (
	"context"
	"errors"
	"fmt"
	"payout/internal/models"
	"time"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) Save(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindByStoreAndStatus(ctx context.Context, storeID uint, status models.PaymentStatus) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND status = ?", storeID, status).
		Order("id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by status: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) ListByStore(ctx context.Context, storeID uint, status models.PaymentStatus, limit, offset int) ([]models.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("store_id = ?", storeID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []models.Payment
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&payments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepository) TransitionStatus(ctx context.Context, id uint, from, to models.PaymentStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id uint, reference string, paidAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusPaid,
			"settlement_ref": reference,
			"paid_at":        paidAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark payment paid: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *paymentRepository) ExecuteInTransaction(ctx context.Context, fn func(PaymentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &paymentRepository{db: tx}
		return fn(txRepo)
	})
}
