// Package metrics provides Prometheus metrics for the portfolio tracker.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Price Refresh Metrics
	PriceRefreshTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_price_refresh_total",
			Help: "Total number of completed price refresh cycles",
		},
	)

	PriceRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_price_refresh_duration_seconds",
			Help:    "Time taken to run one refresh cycle",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	QuoteFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_quote_fetch_failures_total",
			Help: "Live quote fetch failures by source",
		},
		[]string{"source"},
	)

	// Portfolio Metrics
	PortfolioValueINR = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_portfolio_value_inr",
			Help: "Total current portfolio value in INR",
		},
	)

	PortfolioValueByClass = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "folio_portfolio_value_by_class_inr",
			Help: "Portfolio value in INR by asset class",
		},
		[]string{"class"},
	)

	TransactionsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_transactions_recorded_total",
			Help: "Ledger transactions recorded by kind",
		},
		[]string{"kind"},
	)

	// Snapshot Metrics
	SnapshotsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_snapshots_recorded_total",
			Help: "Total number of daily snapshot upserts",
		},
	)

	SnapshotCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_snapshot_count",
			Help: "Number of snapshots retained in history",
		},
	)
)
