// Package shard implements the unit of ownership in the engine's sharded
// processing model: one goroutine, one accounts map, one dispute store,
// dispatching the five transaction kinds against the account and
// disputestore state machines with no locking of its own.
//
// # Overview
//
// A Shard owns an exclusive, disjoint slice of the client keyspace,
// partitioned by the engine as client mod shard-count. Exactly one
// goroutine ever calls Apply on a given Shard during a run, so its
// internal map and dispute store need no locking: correctness comes from
// the engine never handing the same client to two shards, not from
// synchronization inside the Shard itself. A Shard is created once per
// worker at engine startup and lives for the lifetime of the run; it is
// not rebalanced or migrated, unlike the teacher's notion of a shard as a
// unit that moves between nodes.
//
// # Architecture
//
//	┌───────────────────────────────────────────┐
//	│                  SHARD                     │
//	├───────────────────────────────────────────┤
//	│                                             │
//	│  ┌───────────────────────────────────────┐  │
//	│  │  accounts map[Client]Account          │  │
//	│  │  - one entry per client ever seen     │  │
//	│  │  - fetch-or-create on Deposit         │  │
//	│  │  - no eviction, no locking            │  │
//	│  └───────────────────────────────────────┘  │
//	│                                             │
//	│  ┌───────────────────────────────────────┐  │
//	│  │  disputestore.Store                   │  │
//	│  │  - (client, tx_id) -> {value, status} │  │
//	│  │  - resident LRU cache + bbolt mirror  │  │
//	│  └───────────────────────────────────────┘  │
//	│                                             │
//	│  ┌───────────────────────────────────────┐  │
//	│  │  metrics.ShardCounters                │  │
//	│  │  - per-kind processed/rejected counts │  │
//	│  └───────────────────────────────────────┘  │
//	│                                             │
//	└───────────────────────────────────────────┘
//
// A Shard is not a network-addressable entity: it has no ID exposed
// beyond an integer matching its position in the engine's shard slice, no
// primary/replica role, and no RPC surface. Everything it owns is
// in-process.
//
// # Dispatch
//
// Apply routes a transaction to one of five handlers by its Kind:
//
// Deposit(client, tx_id, value):
//   - Fetch-or-create the client's Account (zero value is a fresh Active
//     account).
//   - Apply Account.Deposit(value).
//   - Insert {value, Undisputed} into the dispute store keyed by
//     (client, tx_id).
//   - O(1); never rejects for a missing account, only for a Frozen one.
//
// Withdrawal(client, value):
//   - Require an existing, Active account (ErrAccountNotFound or
//     account.ErrFrozen otherwise).
//   - Apply Account.Withdraw(value); rejects with
//     account.ErrNotEnoughFunds if Available is insufficient.
//   - No dispute-store side effect — a withdrawal's tx_id is never
//     inserted, which is what makes a later Dispute against it miss the
//     store and get rejected.
//
// Dispute(client, tx_id):
//   - Require an existing, Active account and an Undisputed record for
//     tx_id.
//   - Apply Account.FreezeFunds(record.value), which may drive Available
//     negative if the deposit was already partially withdrawn.
//   - Flip the record to Disputed.
//   - Rejects with disputestore.ErrNotAvailableForDispute if the record
//     is already Disputed, enforcing at-most-one-dispute-per-deposit.
//
// Resolve(client, tx_id):
//   - Require a Disputed record.
//   - Apply Account.ReleaseFunds(record.value).
//   - Remove the record — resolved disputes leave no trace, which is
//     also what makes re-disputing a resolved deposit impossible (the
//     record is gone, so the lookup misses and rejects).
//
// Chargeback(client, tx_id):
//   - Require a Disputed record.
//   - Apply Account.Chargeback(record.value), then Account.Freeze() on
//     the result.
//   - Remove the record.
//   - Freeze is terminal: every later transaction for this client
//     rejects with account.ErrFrozen.
//
// Rejections are silent from the caller's perspective — Apply never
// returns an error — because the chosen failure-handling policy (see
// spec §7) is to drop the transaction and move on, not to halt the
// stream. Optional debug logging records why, when a *logging.Logger was
// supplied to New.
//
// # Write-back discipline
//
// Every handler that touches both the dispute store and the accounts map
// writes the dispute store first, then the map:
//
//	disputestore write  ──►  accounts[client] = newAccount
//	     (fallible)              (infallible)
//
// If the store's write fails — physically, e.g. the on-disk bbolt mirror
// returns an I/O error — the account map is never touched, so the shard
// never ends up with a credited or debited account and no matching
// dispute record. In-memory map assignment cannot itself fail, so once
// the store write has succeeded there is nothing left to roll back.
//
// # Thread-safety
//
// None of a Shard's fields are synchronized. This is deliberate, not an
// oversight: the engine guarantees exactly one goroutine calls Apply (and
// Accounts/Counters, which are read only after that goroutine has
// stopped) for a given Shard's entire lifetime. Sharing a *Shard across
// goroutines, or calling Accounts/Counters concurrently with Apply, is a
// data race and is never done anywhere in this codebase.
//
// # Performance
//
// Every handler above is O(1): one or two map lookups plus at most one
// dispute-store operation (itself O(1) on an LRU cache hit, one bbolt
// read/write on a miss). A Shard never scans its accounts map or its
// dispute store during normal processing; Accounts() returning the full
// map is the only O(n) operation, and it only happens once, after the
// shard has stopped accepting work.
//
// # Usage example
//
//	s, err := shard.New(0, log)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.Apply(txn.Transaction{Kind: txn.Deposit, Client: 1, TxID: 1, Value: v})
//	s.Apply(txn.Transaction{Kind: txn.Dispute, Client: 1, TxID: 1})
//
//	accounts := s.Accounts() // safe only once Apply calls have stopped
//
// # See also
//
//   - internal/account: the Active/Frozen state machine Apply's handlers
//     drive.
//   - internal/disputestore: the (client, tx_id) bookkeeping store.
//   - internal/engine: owns a slice of Shards, routes transactions to
//     them by client mod shard-count, and merges their final account
//     maps.
package shard
