package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the Dream Analyzer backend
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Telegram Bot API
	TelegramRequestsTotal *prometheus.CounterVec

	// Business Metrics
	RewardClaimsTotal     *prometheus.CounterVec
	MembershipChecksTotal *prometheus.CounterVec
	InvoicesCreatedTotal  *prometheus.CounterVec
	PlansExpiredTotal     prometheus.Counter
}

// NewMetricsRegistry registers all metrics with reg (prometheus.DefaultRegisterer in main, a fresh registry in tests)
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dream_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dream_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dream_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dream_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dream_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		TelegramRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dream_telegram_requests_total",
				Help: "Telegram Bot API calls by method and result code",
			},
			[]string{"method", "result"},
		),

		// Business Metrics
		RewardClaimsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dream_reward_claims_total",
				Help: "Channel reward claim attempts by outcome",
			},
			[]string{"outcome"},
		),
		MembershipChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dream_membership_checks_total",
				Help: "Channel membership checks by reported status or error kind",
			},
			[]string{"result"},
		),
		InvoicesCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dream_invoices_created_total",
				Help: "Invoice links created by plan",
			},
			[]string{"plan"},
		),
		PlansExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dream_plans_expired_total",
				Help: "Paid or trial plans downgraded to free after expiry",
			},
		),
	}
}
