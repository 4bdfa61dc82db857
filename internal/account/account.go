// Package account implements the per-client balance state machine: the
// Active/Frozen lifecycle and the five pure balance operations that move
// between them. See doc.go for an overview.
package account

import (
	"errors"

	"github.com/dreamware/ledgerstream/internal/money"
)

// ErrNotEnoughFunds is returned by Withdraw, ReleaseFunds, and Chargeback when
// the relevant balance (available or held) is smaller than the requested
// amount.
var ErrNotEnoughFunds = errors.New("account: not enough funds")

// ErrFrozen is returned by any balance operation attempted on a Frozen
// account. Frozen is terminal: there is no operation that transitions an
// account back to Active.
var ErrFrozen = errors.New("account: account is frozen")

// State is the lifecycle stage of an Account.
type State uint8

const (
	// Active accounts accept deposits, withdrawals, and dispute-lifecycle
	// operations.
	Active State = iota
	// Frozen accounts are terminal: every operation is refused, balances
	// are read-only.
	Frozen
)

// Account is a client's balance pair plus its lifecycle state. The zero
// value is a fresh Active account with zero balances, matching the
// fetch-or-create semantics Deposit needs in the shard dispatch loop.
//
// All mutating methods are pure: they return a new Account or an error,
// never modifying the receiver. This makes the Active/Frozen invariant
// (no transition back to Active once Frozen) checkable by construction
// rather than by a runtime flag check scattered across call sites.
type Account struct {
	Available money.Value
	Held      money.Value
	State     State
}

// Deposit credits amount to Available. Only legal on an Active account.
func (a Account) Deposit(amount money.Value) (Account, error) {
	if a.State == Frozen {
		return a, ErrFrozen
	}
	a.Available = a.Available.Add(amount)
	return a, nil
}

// Withdraw debits amount from Available, failing with ErrNotEnoughFunds if
// Available is smaller than amount. Only legal on an Active account.
func (a Account) Withdraw(amount money.Value) (Account, error) {
	if a.State == Frozen {
		return a, ErrFrozen
	}
	if a.Available.LessThan(amount) {
		return a, ErrNotEnoughFunds
	}
	a.Available = a.Available.Sub(amount)
	return a, nil
}

// FreezeFunds moves amount from Available to Held as part of opening a
// dispute. Available is allowed to go negative: the client may have
// already withdrawn funds that are now disputed, which the bank treats as
// an accepted debit state rather than a precondition failure.
func (a Account) FreezeFunds(amount money.Value) (Account, error) {
	if a.State == Frozen {
		return a, ErrFrozen
	}
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
	return a, nil
}

// ReleaseFunds moves amount from Held back to Available as part of
// resolving a dispute in the client's favor, failing with
// ErrNotEnoughFunds if Held is smaller than amount.
func (a Account) ReleaseFunds(amount money.Value) (Account, error) {
	if a.State == Frozen {
		return a, ErrFrozen
	}
	if a.Held.LessThan(amount) {
		return a, ErrNotEnoughFunds
	}
	a.Available = a.Available.Add(amount)
	a.Held = a.Held.Sub(amount)
	return a, nil
}

// Chargeback removes amount from Held without crediting it back to
// Available, reflecting a bank-side reversal of already-disputed funds.
// Callers that want to freeze the account as part of a chargeback call
// Freeze on the result.
func (a Account) Chargeback(amount money.Value) (Account, error) {
	if a.State == Frozen {
		return a, ErrFrozen
	}
	if a.Held.LessThan(amount) {
		return a, ErrNotEnoughFunds
	}
	a.Held = a.Held.Sub(amount)
	return a, nil
}

// Freeze transitions the account to Frozen, keeping its current balances.
// Frozen is terminal; there is no inverse operation.
func (a Account) Freeze() Account {
	a.State = Frozen
	return a
}

// Total returns Available + Held. It is always computed, never stored.
func (a Account) Total() money.Value {
	return a.Available.Add(a.Held)
}

// Locked reports whether the account is Frozen, matching the "locked"
// column of the output schema.
func (a Account) Locked() bool {
	return a.State == Frozen
}
