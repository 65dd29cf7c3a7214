package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Gacha Metrics
var (
	PullsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePullsTotal,
			Help: HelpTextPullsTotal,
		},
		[]string{LabelBanner, LabelCount},
	)

	DrawsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDrawsTotal,
			Help: HelpTextDrawsTotal,
		},
		[]string{LabelBanner, LabelTier},
	)

	PullRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePullRejections,
			Help: HelpTextPullRejections,
		},
		[]string{LabelReason},
	)

	CurrencySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCurrencySpent,
			Help: HelpTextCurrencySpent,
		},
		[]string{LabelItem},
	)

	RewardInconsistencies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardInconsistencies,
			Help: HelpTextRewardInconsistencies,
		},
		[]string{LabelReason},
	)

	RegistryReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRegistryReloads,
			Help: HelpTextRegistryReloads,
		},
		[]string{LabelResult},
	)

	PullDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePullDuration,
			Help:    HelpTextPullDuration,
			Buckets: PullLatencyBuckets,
		},
	)

	PityPersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePityPersistenceFailure,
			Help: HelpTextPityPersistenceFailure,
		},
		[]string{LabelOp},
	)
)
