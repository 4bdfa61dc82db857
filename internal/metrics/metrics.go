// Package metrics collects per-shard transaction counters and rolls them
// up into Prometheus counter vectors once the engine finishes a run. See
// doc.go for an overview.
package metrics

import (
	"fmt"
	"sort"
	"sync/atomic"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dreamware/ledgerstream/internal/txn"
)

// numKinds is the number of txn.Kind values; counters are indexed by Kind
// directly to avoid a map on the hot path.
const numKinds = 5

// ShardCounters tracks how many transactions of each kind a single shard
// accepted and rejected. It is owned exclusively by that shard's
// goroutine during a run; the atomic operations exist only so a snapshot
// can be taken safely from the dispatcher after the shard's worker
// goroutine has exited, without requiring a second synchronization point.
type ShardCounters struct {
	processed [numKinds]uint64
	rejected  [numKinds]uint64
}

// RecordProcessed increments the processed counter for kind. Values
// outside the known kind range are ignored rather than indexed, so a
// corrupted Kind can never panic the shard goroutine mid-run.
func (c *ShardCounters) RecordProcessed(kind txn.Kind) {
	if int(kind) >= numKinds {
		return
	}
	atomic.AddUint64(&c.processed[kind], 1)
}

// RecordRejected increments the rejected counter for kind. See
// RecordProcessed for the out-of-range handling rationale.
func (c *ShardCounters) RecordRejected(kind txn.Kind) {
	if int(kind) >= numKinds {
		return
	}
	atomic.AddUint64(&c.rejected[kind], 1)
}

// Snapshot is a point-in-time copy of a ShardCounters, keyed by the kind's
// string label.
type Snapshot struct {
	Processed map[string]uint64
	Rejected  map[string]uint64
}

// Snapshot takes a consistent copy of c's counters.
func (c *ShardCounters) Snapshot() Snapshot {
	snap := Snapshot{
		Processed: make(map[string]uint64, numKinds),
		Rejected:  make(map[string]uint64, numKinds),
	}
	for k := txn.Kind(0); k < numKinds; k++ {
		snap.Processed[k.String()] = atomic.LoadUint64(&c.processed[k])
		snap.Rejected[k.String()] = atomic.LoadUint64(&c.rejected[k])
	}
	return snap
}

// Registry aggregates ShardCounters from every shard into Prometheus
// counter vectors, so the numbers are ready to be scraped or pushed if
// this CLI is ever embedded in a longer-lived process.
type Registry struct {
	reg       *prometheus.Registry
	processed *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerstream",
		Name:      "transactions_processed_total",
		Help:      "Transactions successfully applied to an account, by kind.",
	}, []string{"kind"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerstream",
		Name:      "transactions_rejected_total",
		Help:      "Transactions dropped due to a precondition failure, by kind.",
	}, []string{"kind"})
	reg.MustRegister(processed, rejected)
	return &Registry{reg: reg, processed: processed, rejected: rejected}
}

// Merge folds one shard's counters into the aggregate.
func (r *Registry) Merge(c *ShardCounters) {
	snap := c.Snapshot()
	for kind, n := range snap.Processed {
		r.processed.WithLabelValues(kind).Add(float64(n))
	}
	for kind, n := range snap.Rejected {
		r.rejected.WithLabelValues(kind).Add(float64(n))
	}
}

// Summary renders a single human-readable line covering every kind with a
// non-zero processed or rejected count, suitable for a post-run log
// message. Output is sorted by kind name for determinism.
func (r *Registry) Summary() string {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Sprintf("metrics: gather failed: %v", err)
	}

	totals := make(map[string][2]float64) // kind -> [processed, rejected]
	for _, fam := range families {
		idx := 0
		switch fam.GetName() {
		case "ledgerstream_transactions_processed_total":
			idx = 0
		case "ledgerstream_transactions_rejected_total":
			idx = 1
		default:
			continue
		}
		for _, m := range fam.GetMetric() {
			kind := labelValue(m, "kind")
			entry := totals[kind]
			entry[idx] = m.GetCounter().GetValue()
			totals[kind] = entry
		}
	}

	kinds := make([]string, 0, len(totals))
	for k := range totals {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	out := "processed/rejected by kind:"
	for _, k := range kinds {
		v := totals[k]
		if v[0] == 0 && v[1] == 0 {
			continue
		}
		out += fmt.Sprintf(" %s=%.0f/%.0f", k, v[0], v[1])
	}
	return out
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
