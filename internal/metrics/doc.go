// Package metrics tracks how many transactions of each kind were
// accepted or rejected, per shard, using plain atomic counters, then
// rolls every shard's counters up into Prometheus counter vectors once
// the engine has finished a run.
//
// # Overview
//
// There are two layers here, matching the two points in the engine's
// lifecycle where counting happens:
//
//   - ShardCounters: one per Shard, owned exclusively by that shard's
//     worker goroutine while a run is in progress. It uses sync/atomic,
//     not a mutex — matching the spec's "no locks, no atomics in the
//     core" rule for cross-shard coordination while still giving each
//     shard cheap, allocation-free bookkeeping of its own.
//   - Registry: built once per run, accumulates every shard's
//     ShardCounters into Prometheus CounterVecs after the engine has
//     drained, and renders a single human-readable summary line.
//
// # Architecture
//
//	┌────────────┐  ┌────────────┐  ┌────────────┐  ┌────────────┐
//	│ShardCounters│  │ShardCounters│  │ShardCounters│  │ShardCounters│
//	│  shard 0    │  │  shard 1    │  │  shard 2    │  │  shard N-1  │
//	│  [5]uint64  │  │  [5]uint64  │  │  [5]uint64  │  │  [5]uint64  │
//	│  processed  │  │  processed  │  │  processed  │  │  processed  │
//	│  [5]uint64  │  │  [5]uint64  │  │  [5]uint64  │  │  [5]uint64  │
//	│  rejected   │  │  rejected   │  │  rejected   │  │  rejected   │
//	└──────┬──────┘  └──────┬──────┘  └──────┬──────┘  └──────┬──────┘
//	       │                │                │                │
//	       └────────────────┴───────┬────────┴────────────────┘
//	                                ▼
//	                       Registry.Merge (×N, after Finish)
//	                                │
//	                  ┌─────────────┴─────────────┐
//	                  ▼                           ▼
//	      prometheus.CounterVec          prometheus.CounterVec
//	      transactions_processed_total   transactions_rejected_total
//	                  │                           │
//	                  └─────────────┬─────────────┘
//	                                ▼
//	                        Registry.Summary()
//	                 "processed/rejected by kind: deposit=120/3 ..."
//
// # Why atomics on a single-owner struct
//
// Exactly one goroutine ever calls RecordProcessed/RecordRejected on a
// given ShardCounters — the shard's own worker, from inside Apply. The
// atomic operations are not protecting against a writer race; they exist
// so Engine.Finish's Snapshot/Merge call, made from the dispatcher
// goroutine strictly after that worker has already exited (joined via
// the WaitGroup), has a well-defined happens-before relationship with
// every preceding increment without needing a second lock just for the
// handoff.
//
// Kind values outside the known range are ignored by
// RecordProcessed/RecordRejected rather than indexed into the fixed
// [5]uint64 arrays — the counters are indexed directly by txn.Kind to
// avoid a map on the hot path, and a corrupted or forged Kind (there is
// no decoder path that produces one, but Apply's default case in
// internal/shard can see one) must never be able to panic the shard
// goroutine mid-run.
//
// # Output
//
// Registry.Summary renders one line listing every kind with a non-zero
// processed or rejected count, sorted by kind name for determinism, and
// is logged once by cmd/ledgerstream after Engine.Finish returns. It is
// not pushed or scraped by anything in this codebase today, but the
// underlying Registry is a real prometheus.Registry so nothing more than
// wiring an HTTP handler (promhttp.HandlerFor) would be needed to expose
// it, if this CLI were ever embedded in a longer-lived process.
//
// # Thread-safety
//
// ShardCounters.RecordProcessed/RecordRejected are safe to call from the
// owning shard's goroutine only (see above); Snapshot is safe to call
// from any goroutine once that shard's worker has exited. Registry.Merge
// is called sequentially, once per shard, from the single dispatcher
// goroutine in Engine.Finish — it is not designed for concurrent calls
// from multiple goroutines, since nothing in this codebase needs that.
//
// # Usage example
//
//	registry := metrics.NewRegistry()
//	eng, _ := engine.New(n, engine.WithMetrics(registry))
//	eng.Start()
//	// ... feed transactions ...
//	accounts, _ := eng.Finish() // merges every shard's counters in
//	log.Infof("%s", registry.Summary())
//
// # See also
//
//   - internal/shard: the sole caller of RecordProcessed/RecordRejected.
//   - internal/engine: builds the Registry via WithMetrics and merges
//     into it inside Finish.
package metrics
