// Package shard implements the single-goroutine state machine that owns
// one partition of the client keyspace: its accounts and its dispute
// store. See doc.go for an overview.
package shard

import (
	"errors"
	"fmt"

	"github.com/dreamware/ledgerstream/internal/account"
	"github.com/dreamware/ledgerstream/internal/disputestore"
	"github.com/dreamware/ledgerstream/internal/logging"
	"github.com/dreamware/ledgerstream/internal/metrics"
	"github.com/dreamware/ledgerstream/internal/txn"
)

// ErrAccountNotFound is returned by Withdrawal, Dispute, Resolve, and
// Chargeback when the referenced client has never made a deposit. Deposit
// never returns this error: a missing account is fetch-or-create.
var ErrAccountNotFound = errors.New("shard: account not found")

// Shard owns a disjoint slice of the client keyspace: its accounts map and
// its dispute store. Nothing outside the owning goroutine may touch a
// Shard's fields while it is processing transactions — see the package
// doc and the engine package for the dispatch discipline that guarantees
// this.
type Shard struct {
	id       int
	accounts map[txn.Client]account.Account
	disputes *disputestore.Store
	counters metrics.ShardCounters
	log      *logging.Logger
}

// New creates a Shard identified by id, with its own dispute store. log
// may be nil, in which case rejected transactions are not reported
// anywhere but the counters.
func New(id int, log *logging.Logger) (*Shard, error) {
	store, err := disputestore.New()
	if err != nil {
		return nil, fmt.Errorf("shard %d: %w", id, err)
	}
	return &Shard{
		id:       id,
		accounts: make(map[txn.Client]account.Account),
		disputes: store,
		log:      log,
	}, nil
}

// ID returns the shard's index, matching client mod shard-count.
func (s *Shard) ID() int {
	return s.id
}

// Close releases the shard's dispute store.
func (s *Shard) Close() error {
	return s.disputes.Close()
}

// Counters returns the shard's live counters. Safe to read only after the
// shard's Apply calls have all completed, per the package doc.
func (s *Shard) Counters() *metrics.ShardCounters {
	return &s.counters
}

// Accounts returns the shard's final account map. The caller receives the
// live map, not a copy: call this only after the shard has stopped
// processing transactions.
func (s *Shard) Accounts() map[txn.Client]account.Account {
	return s.accounts
}

// Apply processes a single transaction against the shard's state. Any
// precondition failure is absorbed: the transaction is dropped, the
// rejected counter for its kind is incremented, and no account or dispute
// state changes. Apply never returns an error; the engine's per-shard
// worker loop has nothing to do with one transaction's failure except
// move on to the next.
func (s *Shard) Apply(tx txn.Transaction) {
	if err := s.dispatch(tx); err != nil {
		s.counters.RecordRejected(tx.Kind)
		if s.log != nil {
			s.log.Debugf("shard %d: rejected %s client=%d tx=%d: %v", s.id, tx.Kind, tx.Client, tx.TxID, err)
		}
		return
	}
	s.counters.RecordProcessed(tx.Kind)
}

func (s *Shard) dispatch(tx txn.Transaction) error {
	switch tx.Kind {
	case txn.Deposit:
		return s.applyDeposit(tx)
	case txn.Withdrawal:
		return s.applyWithdrawal(tx)
	case txn.Dispute:
		return s.applyDispute(tx)
	case txn.Resolve:
		return s.applyResolve(tx)
	case txn.Chargeback:
		return s.applyChargeback(tx)
	default:
		return fmt.Errorf("shard: unknown transaction kind %d", tx.Kind)
	}
}

// applyDeposit fetches-or-creates the client's account, credits it, and
// records a fresh Undisputed dispute entry keyed by this deposit's tx_id.
// The dispute store is written before the account map, per the shard's
// write-back discipline: a failure spilling to disk must never leave a
// credited account with no matching dispute record.
func (s *Shard) applyDeposit(tx txn.Transaction) error {
	acc := s.accounts[tx.Client]
	acc, err := acc.Deposit(tx.Value)
	if err != nil {
		return err
	}
	if err := s.disputes.Insert(tx.Client, tx.TxID, disputestore.Record{
		Value:  tx.Value,
		Status: disputestore.Undisputed,
	}); err != nil {
		return err
	}
	s.accounts[tx.Client] = acc
	return nil
}

// applyWithdrawal debits an existing account. Withdrawals are never
// inserted into the dispute store, which is what makes them not
// disputable: a later Dispute referencing a withdrawal's tx_id simply
// misses the store.
func (s *Shard) applyWithdrawal(tx txn.Transaction) error {
	acc, ok := s.accounts[tx.Client]
	if !ok {
		return ErrAccountNotFound
	}
	acc, err := acc.Withdraw(tx.Value)
	if err != nil {
		return err
	}
	s.accounts[tx.Client] = acc
	return nil
}

// applyDispute moves the disputed deposit's value from Available to Held
// and flips its record to Disputed. A record already Disputed, or no
// record at all, rejects the transaction untouched.
func (s *Shard) applyDispute(tx txn.Transaction) error {
	acc, ok := s.accounts[tx.Client]
	if !ok {
		return ErrAccountNotFound
	}
	rec, err := s.disputes.Get(tx.Client, tx.TxID)
	if err != nil {
		return err
	}
	if rec.Status == disputestore.Disputed {
		return disputestore.ErrNotAvailableForDispute
	}
	newAcc, err := acc.FreezeFunds(rec.Value)
	if err != nil {
		return err
	}
	rec.Status = disputestore.Disputed
	if err := s.disputes.Insert(tx.Client, tx.TxID, rec); err != nil {
		return err
	}
	s.accounts[tx.Client] = newAcc
	return nil
}

// applyResolve releases a disputed deposit's value back to Available and
// removes its record, closing the dispute in the client's favor.
func (s *Shard) applyResolve(tx txn.Transaction) error {
	acc, ok := s.accounts[tx.Client]
	if !ok {
		return ErrAccountNotFound
	}
	rec, err := s.disputes.Get(tx.Client, tx.TxID)
	if err != nil {
		return err
	}
	if rec.Status != disputestore.Disputed {
		return disputestore.ErrNoDisputeActive
	}
	newAcc, err := acc.ReleaseFunds(rec.Value)
	if err != nil {
		return err
	}
	if err := s.disputes.Remove(tx.Client, tx.TxID); err != nil {
		return err
	}
	s.accounts[tx.Client] = newAcc
	return nil
}

// applyChargeback removes a disputed deposit's value from Held, freezes
// the account, and removes its record, closing the dispute in the bank's
// favor. Freeze is terminal: no later transaction can reactivate the
// account.
func (s *Shard) applyChargeback(tx txn.Transaction) error {
	acc, ok := s.accounts[tx.Client]
	if !ok {
		return ErrAccountNotFound
	}
	rec, err := s.disputes.Get(tx.Client, tx.TxID)
	if err != nil {
		return err
	}
	if rec.Status != disputestore.Disputed {
		return disputestore.ErrNoDisputeActive
	}
	newAcc, err := acc.Chargeback(rec.Value)
	if err != nil {
		return err
	}
	newAcc = newAcc.Freeze()
	if err := s.disputes.Remove(tx.Client, tx.TxID); err != nil {
		return err
	}
	s.accounts[tx.Client] = newAcc
	return nil
}
