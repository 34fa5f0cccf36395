package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// PrometheusCollector exports settlement metrics to a prometheus registry.
type PrometheusCollector struct {
	PaymentsAcceptedTotal  *prometheus.CounterVec
	PaymentsAcceptedAmount *prometheus.CounterVec
	FeesCollectedAmount    *prometheus.CounterVec
	TransitionsTotal       *prometheus.CounterVec
	PayoutsTotal           *prometheus.CounterVec
	PayoutAmount           *prometheus.CounterVec
	PaymentsPaidTotal      *prometheus.CounterVec
	ErrorsTotal            *prometheus.CounterVec
	OperationDuration      *prometheus.HistogramVec
}

// NewPrometheusCollector registers the settlement metrics with reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	factory := promauto.With(reg)

	return &PrometheusCollector{
		PaymentsAcceptedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_payments_accepted_total",
				Help: "Number of accepted payments",
			},
			[]string{"store_id"},
		),
		PaymentsAcceptedAmount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_payments_accepted_amount_total",
				Help: "Gross amount of accepted payments",
			},
			[]string{"store_id"},
		),
		FeesCollectedAmount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_fees_amount_total",
				Help: "Fees deducted at acceptance",
			},
			[]string{"store_id"},
		),
		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_status_transitions_total",
				Help: "Payments moved into a status",
			},
			[]string{"status"},
		),
		PayoutsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_payouts_total",
				Help: "Payout attempts that paid at least one payment",
			},
			[]string{"store_id"},
		),
		PayoutAmount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_payouts_amount_total",
				Help: "Amount paid out to stores",
			},
			[]string{"store_id"},
		),
		PaymentsPaidTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_payments_paid_total",
				Help: "Payments included in payouts",
			},
			[]string{"store_id"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_errors_total",
				Help: "Failed operations by error code",
			},
			[]string{"operation", "code"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payout_operation_duration_seconds",
				Help:    "Service operation latency",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"operation"},
		),
	}
}

func (m *PrometheusCollector) RecordAccepted(storeID uint, amount, available decimal.Decimal) {
	store := storeLabel(storeID)
	m.PaymentsAcceptedTotal.WithLabelValues(store).Inc()
	m.PaymentsAcceptedAmount.WithLabelValues(store).Add(amount.InexactFloat64())
	if fees := amount.Sub(available); fees.IsPositive() {
		m.FeesCollectedAmount.WithLabelValues(store).Add(fees.InexactFloat64())
	}
}

func (m *PrometheusCollector) RecordTransition(status string, count int) {
	m.TransitionsTotal.WithLabelValues(status).Add(float64(count))
}

func (m *PrometheusCollector) RecordPayout(storeID uint, count int, amount decimal.Decimal) {
	if count == 0 {
		return
	}
	store := storeLabel(storeID)
	m.PayoutsTotal.WithLabelValues(store).Inc()
	m.PaymentsPaidTotal.WithLabelValues(store).Add(float64(count))
	m.PayoutAmount.WithLabelValues(store).Add(amount.InexactFloat64())
}

func (m *PrometheusCollector) RecordError(operation, code string) {
	if code == "" {
		code = "INTERNAL"
	}
	m.ErrorsTotal.WithLabelValues(operation, code).Inc()
}

func (m *PrometheusCollector) ObserveDuration(operation string, d time.Duration) {
	m.OperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func storeLabel(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
