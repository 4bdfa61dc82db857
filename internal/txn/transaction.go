// Package txn defines the wire-independent transaction record consumed by
// the engine: the five event kinds, and the Client/TxID identifier types.
// See doc.go for an overview.
package txn

import "github.com/dreamware/ledgerstream/internal/money"

// Client is an unsigned 16-bit client account identifier. Sharding assigns
// a client to worker `client mod N`.
type Client uint16

// TxID is an unsigned 32-bit transaction identifier. Deposit TxIDs are
// assumed unique within a single client's stream; dispute-lifecycle events
// reference a prior deposit's TxID.
type TxID uint32

// Kind tags which of the five variants a Transaction holds.
type Kind uint8

const (
	// Deposit credits Value to the client's available balance.
	Deposit Kind = iota
	// Withdrawal debits Value from the client's available balance.
	Withdrawal
	// Dispute flags a prior deposit as contested, moving its value from
	// available to held.
	Dispute
	// Resolve releases a disputed deposit's held value back to available.
	Resolve
	// Chargeback reverses a disputed deposit and freezes the account.
	Chargeback
)

// String renders a Kind using the lowercase spelling from the input/output
// tabular schema.
func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Dispute:
		return "dispute"
	case Resolve:
		return "resolve"
	case Chargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Transaction is a single event in a client's stream. Value is only
// meaningful for Deposit and Withdrawal; it is the zero Value for the three
// dispute-lifecycle kinds.
type Transaction struct {
	Kind   Kind
	Client Client
	TxID   TxID
	Value  money.Value
}
