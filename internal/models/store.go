package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store is a merchant that receives payouts. Stores are immutable once registered.
type Store struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	FeeC      decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"fee_c"`
	CreatedAt time.Time       `json:"created_at"`
}
