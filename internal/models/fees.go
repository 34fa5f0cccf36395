package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSchedule is one version of the global fee parameters.
// A is a fixed fee, B a proportional rate and D the blocking rate.
type FeeSchedule struct {
	Version   uint            `gorm:"primarykey" json:"version"`
	A         decimal.Decimal `gorm:"column:fee_a;type:numeric(20,6);not null" json:"a"`
	B         decimal.Decimal `gorm:"column:fee_b;type:numeric(20,6);not null" json:"b"`
	D         decimal.Decimal `gorm:"column:fee_d;type:numeric(20,6);not null" json:"d"`
	CreatedAt time.Time       `json:"created_at"`
}
