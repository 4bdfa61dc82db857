// Package account models a single client's balance as a two-state
// lifecycle: Active, which accepts every balance operation, and Frozen,
// which is terminal and read-only.
//
// # Overview
//
// An Account pairs two money.Value balances, Available and Held, with a
// State discriminant. Every mutating method is pure: it returns a new
// Account value (or a sentinel error) rather than mutating the receiver,
// so the shard dispatch loop in internal/shard can apply an operation,
// check the error, and either write back the result or drop the
// transaction unchanged, with no partial state ever observable in
// between.
//
// # Architecture
//
//	┌─────────────────────────────┐        Freeze()        ┌─────────────────┐
//	│           Active            │ ──────────────────────► │      Frozen      │
//	│  Available, Held: mutable   │                          │  read-only       │
//	│  via Deposit/Withdraw/      │                          │  every method    │
//	│  FreezeFunds/ReleaseFunds/  │                          │  returns         │
//	│  Chargeback                 │                          │  ErrFrozen       │
//	└─────────────────────────────┘                          └─────────────────┘
//	           ▲                                                      │
//	           └──────────────────────── no path back ────────────────┘
//
// The zero Account value is a fresh Active account with zero balances —
// this is deliberate: internal/shard's fetch-or-create semantics for
// Deposit rely on a missing map entry behaving exactly like a real new
// account, with no separate construction step.
//
// # Operations
//
// Deposit(amount): credits Available. No precondition beyond the
// account being Active; amount is assumed non-negative (internal/ioformat
// enforces that at decode time, before a Transaction ever reaches an
// Account).
//
// Withdraw(amount): debits Available, failing with ErrNotEnoughFunds if
// Available < amount. Only legal on Active.
//
// FreezeFunds(amount): moves amount from Available to Held as part of
// opening a dispute. Unlike Withdraw, this has no funds-sufficiency
// precondition — Available is allowed to go negative, reflecting that
// the client may have already withdrawn funds that are now disputed.
// Treating that as an accepted debit state, not a precondition failure,
// is a deliberate design choice carried from the original specification.
//
// ReleaseFunds(amount): the inverse of FreezeFunds, moving amount from
// Held back to Available when a dispute resolves in the client's favor.
// Fails with ErrNotEnoughFunds if Held < amount.
//
// Chargeback(amount): removes amount from Held without crediting
// Available, reflecting a reversal of already-disputed funds. Fails with
// ErrNotEnoughFunds if Held < amount. Callers that want the usual
// chargeback behavior (freezing the account) call Freeze on the result
// themselves — Chargeback alone does not freeze anything, which keeps
// the two concerns (moving money, terminating the account) independently
// testable.
//
// Freeze(): transitions to Frozen, keeping current balances. Terminal;
// there is no operation that transitions a Frozen account back to
// Active.
//
// Total() and Locked(): read-only projections used by internal/ioformat
// when encoding the output schema. Total is always computed as
// Available + Held and is never itself stored, so it can never drift out
// of sync with the two balances it is derived from.
//
// # Error handling
//
// Every mutating method checks State == Frozen first and returns
// ErrFrozen immediately if so, before any other precondition. This
// ordering means a Frozen account's Available/Held are truly read-only:
// no other error path can be reached that would otherwise mutate them.
// ErrNotEnoughFunds is returned by Withdraw, ReleaseFunds, and
// Chargeback when the relevant balance is smaller than the requested
// amount; all call sites compare with errors.Is rather than equality,
// per the engine-wide sentinel-error convention.
//
// # Thread-safety
//
// Account is an immutable value type with no internal synchronization;
// it needs none, since every method returns a new value rather than
// mutating shared state. The only mutable state in the engine that holds
// Accounts is internal/shard's accounts map, which is itself only ever
// touched by the single goroutine that owns that shard.
//
// # Usage example
//
//	var a Account
//	a, err := a.Deposit(value)
//	if err != nil {
//	    return err
//	}
//	a, err = a.FreezeFunds(disputedAmount)
//	if err != nil {
//	    return err
//	}
//	a, err = a.Chargeback(disputedAmount)
//	if err != nil {
//	    return err
//	}
//	a = a.Freeze()
//
// # See also
//
//   - internal/shard: the sole caller of every Account method, enforcing
//     the write-back-after-dispute-store discipline around them.
//   - internal/money: the Value type Available and Held are built from.
package account
