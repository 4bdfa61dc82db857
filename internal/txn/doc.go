// Package txn holds the transaction record that flows from the decoder,
// through the engine's shards, and (as part of the resulting account
// map) to the encoder: the five-kind transaction sum type and the two
// numeric identifier types it is keyed by.
//
// # Overview
//
// Transaction is deliberately a single flat struct rather than five
// separate types or an interface with five implementations — Value is
// simply the zero money.Value for the three kinds that don't use it
// (Dispute, Resolve, Chargeback). This keeps every handler in
// internal/shard a plain switch over Kind with no type assertions, and
// keeps Transaction trivially constructible by tests without a
// constructor function per kind.
//
// txn has no dependency on the CSV wire format (internal/ioformat) or on
// the account state machine (internal/account), so it can be
// constructed directly by tests and by any future wire format without
// pulling in either.
//
// # Architecture
//
//	type Transaction struct {
//	    Kind   Kind    // which of the five operations this is
//	    Client Client  // uint16, routes to shard Client mod N
//	    TxID   TxID    // uint32, identifies a deposit within its client
//	    Value  money.Value // meaningful only for Deposit/Withdrawal
//	}
//
//	Kind values, in the order the shard dispatch switch checks them:
//	  Deposit    — credits Value to Available, opens a dispute record
//	  Withdrawal — debits Value from Available, never disputable
//	  Dispute    — freezes a prior deposit's Value into Held
//	  Resolve    — releases a disputed deposit's Value back to Available
//	  Chargeback — reverses a disputed deposit's Value and freezes the account
//
// # Identifier types
//
// Client is an unsigned 16-bit client account identifier — the engine
// shards on client mod nWorkers, so its width bounds how many distinct
// clients a single run can address, matching the scale the spec targets
// (large transaction volume per a comparatively small client population).
//
// TxID is an unsigned 32-bit transaction identifier. Deposit TxIDs are
// assumed unique within a single client's stream, not globally —
// internal/disputestore's composite key (client high bits, tx_id low
// bits) enforces this scoping structurally, so two different clients may
// reuse the same TxID without colliding.
//
// # Thread-safety
//
// Transaction, Client, TxID, and Kind are all plain immutable value
// types with no internal state beyond their fields; they require no
// synchronization and are passed by value across the engine's channels,
// which is itself the only synchronization point a Transaction ever
// needs.
//
// # Usage example
//
//	tx := txn.Transaction{
//	    Kind:   txn.Deposit,
//	    Client: 1,
//	    TxID:   1,
//	    Value:  mustParse("1.5"),
//	}
//	fmt.Println(tx.Kind) // "deposit"
//
// # See also
//
//   - internal/ioformat: the only producer of Transaction values from
//     real input, via Decoder.Next.
//   - internal/shard: the only consumer, via Shard.Apply's dispatch
//     switch.
package txn
