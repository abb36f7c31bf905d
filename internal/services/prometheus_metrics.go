package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	ledgerOperations    *prometheus.CounterVec
	ledgerDuration      prometheus.Histogram
	ledgerAmount        prometheus.Histogram
	accountsOpenedTotal prometheus.Counter
	accountsClosedTotal prometheus.Counter
	statementsTotal     *prometheus.CounterVec
	statementDuration   prometheus.Histogram
	activeAccountsTotal prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		ledgerOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger operations processed",
			},
			[]string{"operation", "status"},
		),
		ledgerDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Ledger operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		ledgerAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_amount",
				Help:    "Ledger operation amount in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		accountsOpenedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_opened_total",
				Help: "Total number of accounts opened",
			},
		),
		accountsClosedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_closed_total",
				Help: "Total number of accounts closed",
			},
		),
		statementsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statements_generated_total",
				Help: "Total number of statements generated",
			},
			[]string{"artifact"},
		),
		statementDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "statement_generation_duration_milliseconds",
				Help:    "Statement generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		activeAccountsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_accounts_total",
				Help: "Current number of active accounts",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]
	status := tags["status"]

	switch name {
	case "ledger.operation":
		m.ledgerOperations.WithLabelValues(operation, status).Inc()
	case "account.opened":
		m.accountsOpenedTotal.Inc()
	case "account.closed":
		m.accountsClosedTotal.Inc()
	case "statement.generated":
		m.statementsTotal.WithLabelValues(tags["artifact"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "ledger.operation":
		m.ledgerDuration.Observe(float64(duration.Milliseconds()))
	case "statement.generation":
		m.statementDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "ledger_amount":
		m.ledgerAmount.Observe(value)
	case "active_accounts":
		m.activeAccountsTotal.Set(value)
	}
}
