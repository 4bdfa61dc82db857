// Package engine implements the sharded worker pool that drives the
// internal/shard state machine over an incoming transaction stream: N
// goroutines, one bounded channel per shard, deterministic client-based
// routing, and a disjoint-union merge of the per-shard account state
// once every shard has drained.
//
// # Overview
//
// An Engine is the dispatcher in front of a fixed number of shards. It
// never touches account or dispute state itself; its entire job is
// getting each incoming Transaction to the one shard responsible for its
// Client, in order, and merging the final per-shard results back into a
// single map once processing is done. Nothing about the merge requires
// coordination beyond a WaitGroup: because routing is deterministic,
// every client's transactions land on exactly one shard, so the final
// account maps never overlap and never need reconciling.
//
// # Architecture
//
//	                         ┌──────────────┐
//	   Feed(tx) ───────────► │ client mod N │
//	                         └──────┬───────┘
//	                                │
//	         ┌──────────────┬───────┴───────┬──────────────┐
//	         ▼              ▼               ▼              ▼
//	   ┌───────────┐  ┌───────────┐  ┌───────────┐  ┌───────────┐
//	   │ queue[0]  │  │ queue[1]  │  │ queue[2]  │  │queue[N-1] │
//	   │ (buffered)│  │ (buffered)│  │ (buffered)│  │(buffered) │
//	   └─────┬─────┘  └─────┬─────┘  └─────┬─────┘  └─────┬─────┘
//	         ▼              ▼               ▼              ▼
//	   ┌───────────┐  ┌───────────┐  ┌───────────┐  ┌───────────┐
//	   │ worker 0  │  │ worker 1  │  │ worker 2  │  │worker N-1 │
//	   │shard.Apply│  │shard.Apply│  │shard.Apply│  │shard.Apply│
//	   └─────┬─────┘  └─────┬─────┘  └─────┬─────┘  └─────┬─────┘
//	         │              │               │              │
//	         └──────────────┴───────┬───────┴──────────────┘
//	                                ▼
//	                     Finish(): disjoint-union merge
//	                     map[Client]Account, metrics.Registry
//
// # Construction
//
// New(nWorkers, opts...) builds nWorkers shards up front, each with its
// own dispute store and its own buffered channel (capacity
// defaultQueueCapacity unless overridden by WithQueueCapacity). Options:
//
//   - WithQueueCapacity(n): per-shard channel buffer size. Larger
//     buffers absorb burstier input at the cost of more buffered memory;
//     they do not change correctness.
//   - WithLogger(l): each shard receives a child logger prefixed
//     "shard-N" via Logger.Component, so a rejected-transaction debug
//     line can be traced back to the shard that dropped it.
//   - WithMetrics(r): Finish merges every shard's ShardCounters into r
//     before returning, giving one aggregate processed/rejected count
//     per transaction kind across the whole run.
//
// Construction fails fast: if any shard's dispute store cannot be
// created (e.g. the temp directory for its bbolt spill file is
// unwritable), New tears down the shards already built and returns the
// error instead of leaving a partially constructed Engine.
//
// # Routing
//
// Feed computes int(tx.Client) % len(shards) and sends tx to that
// shard's channel, blocking if the channel is full. This is the engine's
// only form of backpressure: there is no separate flow-control
// mechanism, and a slow shard naturally slows whatever goroutine is
// calling Feed. Routing is the property that makes the whole design
// race-free: every transaction for client c is funneled through shard
// c mod N's channel, which a single goroutine drains strictly in send
// order, so per-client ordering is preserved even though clients on
// different shards are processed with no ordering guarantee relative to
// each other.
//
// # Lifecycle
//
//	New → Start → Feed (zero or more times) → Finish
//
// Start launches exactly one goroutine per shard and is idempotent — a
// second call is a no-op, guarded by the started flag, rather than
// spawning a duplicate set of workers. Finish closes every shard's
// queue (which ends each worker's range loop once its buffer drains),
// waits for every worker goroutine via the WaitGroup, merges the
// resulting account maps and counters, and closes every shard's dispute
// store. Run bundles all three steps into one call for the common case
// of draining a pre-built channel of transactions to completion.
//
// # Thread-safety
//
// Feed is safe to call from any number of goroutines: each call is an
// independent channel send, and Go channels are safe for concurrent
// senders. Start and Finish are not meant to be called concurrently
// with each other or with themselves — there is exactly one dispatcher
// lifecycle per Engine, driven by a single caller goroutine in every
// usage in this codebase (cmd/ledgerstream's run loop).
//
// # Why sharding produces the same result regardless of worker count
//
// Every operation internal/shard implements is keyed by client: two
// transactions for different clients never interact, and decimal
// arithmetic in internal/money is deterministic given an identical
// sequence of operations. So the partition of clients across shards
// cannot change the final balances, only which goroutine computes them
// and in what order the merge visits them. Running the same stream
// through one shard, four, or eight produces the same account set —
// verified directly by TestShardCountInvariant.
//
// # Performance
//
// Feed and the per-shard Apply loop are O(1) per transaction (see
// internal/shard's performance notes for the cost of Apply itself).
// Finish's merge is O(total clients) — one pass over each shard's final
// map — performed exactly once per run after every worker has already
// exited, so it never contends with in-flight processing.
//
// # Usage example
//
//	eng, err := engine.New(runtime.NumCPU(),
//	    engine.WithLogger(log),
//	    engine.WithMetrics(registry))
//	if err != nil {
//	    return err
//	}
//	eng.Start()
//	for tx := range decodedStream {
//	    eng.Feed(tx)
//	}
//	accounts, err := eng.Finish()
//
// # See also
//
//   - internal/shard: the per-worker state machine Engine drives.
//   - internal/metrics: the Registry Finish merges shard counters into.
//   - cmd/ledgerstream: the CLI entrypoint that wires a Decoder, an
//     Engine, and an Encoder together.
package engine
