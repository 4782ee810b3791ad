package recon

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/metrics"
)

// Result is the output of one pipeline run. ObservedAt doubles as the
// sequence token used to discard stale runs.
type Result struct {
	Transactions []*domain.Transaction
	ObservedAt   time.Time
	Degraded     bool
}

// Runner drives collect -> evidence -> merge -> resolve over a fixed list of
// sources. Runs may overlap; Apply keeps only the newest result.
type Runner struct {
	sources []domain.Source
	metrics *metrics.ReconMetrics

	mu          sync.Mutex
	lastApplied time.Time
}

func NewRunner(sources []domain.Source, m *metrics.ReconMetrics) *Runner {
	return &Runner{sources: sources, metrics: m}
}

// Collect gathers candidates from every source. A failing source is logged
// and skipped; collection itself never fails.
func (r *Runner) Collect(ctx context.Context) []domain.CandidateRecord {
	var candidates []domain.CandidateRecord
	for _, src := range r.sources {
		recs, err := src.Collect(ctx)
		if err != nil {
			slog.Warn("source collection failed", "source", src.Name(), "error", err.Error())
			continue
		}
		if r.metrics != nil {
			r.metrics.CandidatesCollected.WithLabelValues(src.Name()).Add(float64(len(recs)))
		}
		candidates = append(candidates, recs...)
	}
	return candidates
}

// Run executes one full pipeline pass.
func (r *Runner) Run(ctx context.Context, trigger string) *Result {
	start := time.Now()
	candidates := r.Collect(ctx)
	txs := Reconcile(candidates)

	degraded := false
	for _, tx := range txs {
		if tx.Degraded {
			degraded = true
			break
		}
	}

	if r.metrics != nil {
		r.metrics.RecordRun(trigger, time.Since(start).Seconds(), len(txs))
	}

	return &Result{
		Transactions: txs,
		ObservedAt:   start,
		Degraded:     degraded,
	}
}

// Apply records the run token if the result is newer than the last applied
// one. Returns false when the result is stale and must be discarded.
func (r *Runner) Apply(res *Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !res.ObservedAt.After(r.lastApplied) {
		if r.metrics != nil {
			r.metrics.ReconRunsDiscarded.Inc()
		}
		return false
	}
	r.lastApplied = res.ObservedAt
	return true
}

// Reconcile deduplicates and merges candidates into canonical transactions
// and resolves their status. Pure; deterministic for a given candidate set.
func Reconcile(candidates []domain.CandidateRecord) []*domain.Transaction {
	groups := groupByID(candidates)

	txs := make([]*domain.Transaction, 0, len(groups))
	for _, group := range groups {
		ev := EvaluateEvidence(group)
		tx := mergeGroup(group)
		tx.Evidence = ev

		// Resolve keeps terminal statuses closed; in that case the proof
		// reference below still attaches as metadata only.
		tx.Status, tx.NeedsVerification = Resolve(tx, group, ev)
		if tx.PaymentProofRef == "" && ev.ProofRef != "" {
			tx.PaymentProofRef = ev.ProofRef
		}

		txs = append(txs, tx)
	}

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].ID < txs[j].ID
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return txs
}
