package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transaction metrics
	TransactionsCreated prometheus.Counter
	TransactionAmount   prometheus.Histogram

	// Integrity metrics
	IntegrityScans  prometheus.Counter
	RecordsVerified prometheus.Counter
	TamperedRecords prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_transactions_created_total",
			Help: "Total number of transactions registered",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finledger_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		IntegrityScans: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_integrity_scans_total",
			Help: "Total number of integrity verification scans",
		}),
		RecordsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_records_verified_total",
			Help: "Total number of records re-verified",
		}),
		TamperedRecords: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finledger_tampered_records_total",
			Help: "Total number of records failing hash re-verification",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
