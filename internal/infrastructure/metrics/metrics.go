package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReconMetrics holds all reconciliation and command instrumentation.
type ReconMetrics struct {
	ReconRunsTotal        prometheus.CounterVec
	ReconRunDuration      prometheus.HistogramVec
	ReconRunsDiscarded    prometheus.Counter
	CandidatesCollected   prometheus.CounterVec
	DegradedFetchesTotal  prometheus.CounterVec
	MalformedEntriesTotal prometheus.CounterVec
	MergedTransactions    prometheus.Gauge
	ExpiredPendingGauge   prometheus.Gauge
	CommandsTotal         prometheus.CounterVec
	CommandDuration       prometheus.HistogramVec
	ProofFallbacksTotal   prometheus.Counter
}

func NewReconMetrics() *ReconMetrics {
	return &ReconMetrics{
		ReconRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recon_runs_total",
				Help: "Total reconciliation pipeline runs",
			},
			[]string{"trigger"},
		),

		ReconRunDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recon_run_duration_seconds",
				Help:    "Duration of reconciliation pipeline runs",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"trigger"},
		),

		ReconRunsDiscarded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recon_runs_discarded_total",
				Help: "Pipeline runs discarded because a newer run already applied",
			},
		),

		CandidatesCollected: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recon_candidates_collected_total",
				Help: "Candidate records collected per source",
			},
			[]string{"source"},
		),

		DegradedFetchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recon_degraded_fetches_total",
				Help: "Collections served from the local mirror after a store failure",
			},
			[]string{"source"},
		),

		MalformedEntriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recon_malformed_cache_entries_total",
				Help: "Cache entries skipped during scan because they failed to decode",
			},
			[]string{"cache"},
		),

		MergedTransactions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "recon_merged_transactions",
				Help: "Canonical transactions produced by the last applied run",
			},
		),

		ExpiredPendingGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "recon_expired_pending_transactions",
				Help: "Still-pending transactions past their payment deadline",
			},
		),

		CommandsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recon_commands_total",
				Help: "Commands processed, by command and result",
			},
			[]string{"command", "result"},
		),

		CommandDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recon_command_duration_seconds",
				Help:    "Duration of command processing including re-reconciliation",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"command"},
		),

		ProofFallbacksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recon_proof_upload_fallbacks_total",
				Help: "Proof uploads parked locally after a write-through failure",
			},
		),
	}
}

func (m *ReconMetrics) RecordRun(trigger string, durationSeconds float64, merged int) {
	m.ReconRunsTotal.WithLabelValues(trigger).Inc()
	m.ReconRunDuration.WithLabelValues(trigger).Observe(durationSeconds)
	m.MergedTransactions.Set(float64(merged))
}

func (m *ReconMetrics) RecordCommand(command, result string, durationSeconds float64) {
	m.CommandsTotal.WithLabelValues(command, result).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(durationSeconds)
}
