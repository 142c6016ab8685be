package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Split metrics
	SplitsCreated   prometheus.Counter
	SplitsCompleted prometheus.Counter
	SplitsCancelled prometheus.Counter
	SplitAmount     prometheus.Histogram

	// Settlement metrics
	PaymentsRecorded   *prometheus.CounterVec
	DuplicatePayments  prometheus.Counter
	PaymentAmount      prometheus.Histogram
	SettlementDuration prometheus.Histogram
	SettlementErrors   *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Cache metrics
	BalanceCacheHits   prometheus.Counter
	BalanceCacheMisses prometheus.Counter
	RedisErrors        *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SplitsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_splits_created_total",
			Help: "Total number of splits created",
		}),
		SplitsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_splits_completed_total",
			Help: "Total number of splits fully settled",
		}),
		SplitsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_splits_cancelled_total",
			Help: "Total number of splits cancelled",
		}),
		SplitAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "zapsplit_split_amount_cents",
			Help:    "Split totals in minor units",
			Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 1000000},
		}),

		PaymentsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zapsplit_payments_recorded_total",
				Help: "Total payments recorded by channel",
			},
			[]string{"channel"},
		),
		DuplicatePayments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_duplicate_payments_total",
			Help: "Total idempotency key replays",
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "zapsplit_payment_amount_cents",
			Help:    "Payment amounts in minor units",
			Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000},
		}),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "zapsplit_settlement_duration_seconds",
			Help:    "Duration of payment settlement operations",
			Buckets: prometheus.DefBuckets,
		}),
		SettlementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zapsplit_settlement_errors_total",
				Help: "Total settlement errors by type",
			},
			[]string{"error_type"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zapsplit_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zapsplit_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "zapsplit_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zapsplit_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_balance_cache_hits_total",
			Help: "Balance summary cache hits",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_balance_cache_misses_total",
			Help: "Balance summary cache misses",
		}),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zapsplit_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zapsplit_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zapsplit_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_outbox_events_published_total",
			Help: "Total outbox events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zapsplit_outbox_publish_errors_total",
			Help: "Total outbox publish failures",
		}),
	}
}
