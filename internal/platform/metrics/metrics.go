// Package metrics holds all Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the instrumentation for the verification pipeline.
type Metrics struct {
	VerificationRuns   *prometheus.CounterVec
	ScoringFallbacks   prometheus.Counter
	SourceFetchLatency *prometheus.HistogramVec
	QuorumRoundLatency prometheus.Histogram
	AssetsRegistered   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VerificationRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "assetoracle_verification_runs_total",
			Help: "Verification runs by terminal status",
		}, []string{"status"}),
		ScoringFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetoracle_scoring_fallbacks_total",
			Help: "Scoring requests answered by the local fallback policy",
		}),
		SourceFetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assetoracle_source_fetch_seconds",
			Help:    "Latency of property data source fetches",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		QuorumRoundLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "assetoracle_quorum_round_seconds",
			Help:    "Wall-clock duration of simulated quorum rounds",
			Buckets: prometheus.DefBuckets,
		}),
		AssetsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "assetoracle_assets_registered_total",
			Help: "Total number of assets registered",
		}),
	}
}

// ObserveSourceLatency records one source fetch duration.
func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	m.SourceFetchLatency.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveQuorumRound records one quorum round duration.
func (m *Metrics) ObserveQuorumRound(d time.Duration) {
	m.QuorumRoundLatency.Observe(d.Seconds())
}

// IncVerificationRun counts a completed run under its terminal status.
func (m *Metrics) IncVerificationRun(status string) {
	m.VerificationRuns.WithLabelValues(status).Inc()
}
