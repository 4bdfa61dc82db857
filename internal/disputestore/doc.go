// Package disputestore holds the per-deposit (value, status) bookkeeping
// a shard needs to resolve or charge back a prior deposit: a keyed store
// from (client, tx_id) to {value, status}, backed by a capacity-bounded
// resident cache in front of an ephemeral on-disk mirror.
//
// # Overview
//
// A record exists from the moment a deposit is processed until it is
// resolved or charged back; withdrawals never appear here, which is what
// makes them not disputable — a Dispute referencing a withdrawal's
// tx_id simply misses the store. Status has exactly two values:
// Undisputed (the state Insert creates a record in) and Disputed (the
// state a successful dispute moves it to). There is no third,
// terminal "resolved" or "charged back" state: once a dispute closes,
// in either direction, its record is removed outright. A record's
// absence is itself meaningful — it is what enforces at-most-one-active-
// dispute-per-deposit and makes a second Resolve or Chargeback against
// the same tx_id fail with ErrNotFound. ErrNoDisputeActive is what a
// Resolve or Chargeback gets for a record that exists but is still
// Undisputed.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────┐
//	│                         Store                            │
//	├─────────────────────────────────────────────────────────┤
//	│                                                           │
//	│  Insert(client, tx_id, record)                           │
//	│       │                                                  │
//	│       ▼                                                  │
//	│  ┌─────────────────────────┐                             │
//	│  │  bbolt (write-through)  │  always written first        │
//	│  │  - NoSync: true         │  (no durability, no flush)   │
//	│  │  - temp file, removed   │                              │
//	│  │    on Close             │                              │
//	│  └───────────┬─────────────┘                             │
//	│              │                                            │
//	│              ▼                                            │
//	│  ┌─────────────────────────┐                             │
//	│  │  resident LRU cache     │  capacity-bounded            │
//	│  │  (hashicorp/golang-lru) │  (defaultCacheCapacity)      │
//	│  └─────────────────────────┘                             │
//	│                                                           │
//	│  Get(client, tx_id)                                      │
//	│       │                                                  │
//	│       ├─ cache hit  ─────────────► return                │
//	│       └─ cache miss ─► read bbolt ─► promote into cache   │
//	│                                    ─► return / ErrNotFound│
//	│                                                           │
//	└─────────────────────────────────────────────────────────┘
//
// # Key encoding
//
// composeKey lays client out in the high 32 bits of a uint64 and tx_id in
// the low 32 bits, so that all records for a given client sort
// contiguously under byte-order comparison:
//
//	key = (uint64(client) << 32) | uint64(tx_id)
//
// This enables the client-prefix range scans named as a possible future
// extension in the spec (listing every open dispute for one client, for
// example) without requiring one today — nothing in this package
// currently performs a range scan, only exact-key lookups.
//
// # Capacity and the bbolt fallback
//
// Insert always writes bbolt before touching the cache, so a key the
// cache evicts to make room for a newer one is never lost. Get and
// Remove check the cache first; on a miss, loadFromDisk reads the key
// directly from bbolt and, if found, re-promotes it into the cache. This
// is what makes the "capacity must not be bounded by RAM" requirement a
// real, exercised property: a shard holding far more open disputes than
// the cache's capacity keeps working correctly, at the cost of an extra
// bbolt read on a cold key, rather than silently losing bookkeeping for
// evicted records.
//
// Rehydrate is a separate, coarser operation: it discards the entire
// resident cache and eagerly reloads it by scanning every key in bbolt.
// It exists for bulk recovery — for example after an operator-triggered
// cache reset — where warming the whole cache in one disk scan is
// cheaper than paying the per-key miss cost one at a time. Per-key
// recovery through Get/Remove does not require calling Rehydrate first;
// the two mechanisms are independent and either one alone is sufficient
// for correctness.
//
// # Durability
//
// The bbolt file backing a Store is opened with NoSync: true and is
// created under os.TempDir, removed by Close. Process death at any point
// discards the store entirely — this is intentional (spec: "writes need
// not be flushed") and is why the store exists purely to bound RAM, not
// to survive a crash or restart.
//
// # Thread-safety
//
// A Store is not safe for concurrent use. Per the engine's sharding
// model, exactly one shard goroutine ever touches a given Store for its
// entire lifetime, so no internal synchronization is needed or present.
//
// # Performance
//
// Insert, Get, and Remove are all O(1) on a cache hit: one LRU lookup
// plus, for Insert and Remove, one bbolt Update transaction. On a cache miss, Get
// and Remove additionally pay one bbolt View transaction to read the
// key back. Rehydrate is O(n) in the number of records currently spilled
// to bbolt, since it scans the entire bucket.
//
// # Usage example
//
//	store, err := disputestore.New()
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Insert(client, txID, disputestore.Record{
//	    Value:  amount,
//	    Status: disputestore.Undisputed,
//	})
//
//	rec, err := store.Get(client, txID)
//	if errors.Is(err, disputestore.ErrNotFound) {
//	    // tx_id was never deposited, or was a withdrawal
//	}
//
// # See also
//
//   - internal/shard: the sole caller of Insert/Get/Remove, enforcing
//     the write-store-then-map discipline.
//   - internal/money: the Value type (de)serialized by encodeRecord and
//     decodeRecord into the 17-byte bbolt record format.
package disputestore
