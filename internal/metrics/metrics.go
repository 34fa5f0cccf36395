// Package metrics records settlement activity.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collector receives settlement measurements from the services.
type Collector interface {
	RecordAccepted(storeID uint, amount, available decimal.Decimal)
	RecordTransition(status string, count int)
	RecordPayout(storeID uint, count int, amount decimal.Decimal)
	RecordError(operation, code string)
	ObserveDuration(operation string, d time.Duration)
}

// NoopCollector is a no-op implementation of Collector
type NoopCollector struct{}

func (NoopCollector) RecordAccepted(uint, decimal.Decimal, decimal.Decimal) {}
func (NoopCollector) RecordTransition(string, int)                          {}
func (NoopCollector) RecordPayout(uint, int, decimal.Decimal)               {}
func (NoopCollector) RecordError(string, string)                            {}
func (NoopCollector) ObserveDuration(string, time.Duration)                 {}
