package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

// Payment statuses, in lifecycle order
const (
	PaymentStatusAccepted  PaymentStatus = "ACCEPTED"
	PaymentStatusProcessed PaymentStatus = "PROCESSED"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusPaid      PaymentStatus = "PAID"
)

// Payment is a single accepted amount moving toward payout.
// AvailableAmount and TempBlockingD are fixed at acceptance.
type Payment struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	StoreID            uint            `gorm:"not null;index:idx_payments_store_status" json:"store_id"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"amount"`
	AvailableAmount    decimal.Decimal `gorm:"type:numeric(38,12);not null" json:"available_amount"`
	TempBlockingD      decimal.Decimal `gorm:"column:temp_blocking_d;type:numeric(38,12);not null" json:"temp_blocking_d"`
	Status             PaymentStatus   `gorm:"type:varchar(16);not null;default:'ACCEPTED';index:idx_payments_store_status" json:"status"`
	FeeScheduleVersion uint            `json:"fee_schedule_version"`
	SettlementRef      string          `gorm:"type:varchar(36);index" json:"settlement_ref,omitempty"`
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Fees returns the total fees deducted at acceptance.
func (p *Payment) Fees() decimal.Decimal {
	return p.Amount.Sub(p.AvailableAmount)
}

// Payable reports whether the payment can be selected for payout.
func (p *Payment) Payable() bool {
	return p.Status == PaymentStatusCompleted && p.AvailableAmount.IsPositive()
}
