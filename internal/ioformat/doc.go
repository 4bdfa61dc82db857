// Package ioformat is the boundary between the engine's internal types
// (txn.Transaction, account.Account) and the tabular CSV format the CLI
// reads and writes.
//
// # Overview
//
// ioformat has exactly two responsibilities: turn a CSV input stream into
// a sequence of txn.Transaction values (Decoder), and turn a final
// map[txn.Client]account.Account into CSV output rows (Encoder). Neither
// direction touches engine or shard state; both are pure syntax/semantics
// translation at the process boundary.
//
// # Architecture
//
//	                   Decoder                              Encoder
//	┌───────────────────────────────────────┐   ┌───────────────────────────────┐
//	│ type,client,tx,amount                  │   │ client,available,held,total,  │
//	│ deposit,1,1,1.0                        │   │ locked                        │
//	│ dispute,1,1,                           │   │ 1,0.0,1.0,1.0,false           │
//	│ deposit,2,2,2.0                        │   │ 2,1.5,0,1.5,false             │
//	│ withdrawal,2,3,0.5                     │   │                               │
//	└───────────────────┬─────────────────────┘   └───────────────▲───────────────┘
//	                    │ csv.Reader                               │ csv.Writer
//	                    ▼                                          │
//	           []txn.Transaction  ──────► engine.Run ──────► map[Client]Account
//
// # Input schema
//
//	type, client, tx, amount
//
// Column semantics:
//
//	type    one of deposit, withdrawal, dispute, resolve, chargeback
//	        (case-insensitive, whitespace-trimmed)
//	client  unsigned integer, fits txn.Client (uint16)
//	tx      unsigned integer, fits txn.TxID (uint32)
//	amount  required and non-negative for deposit/withdrawal; must be
//	        entirely absent (empty field or trailing column omitted) for
//	        dispute/resolve/chargeback
//
// Rows may have 3 or 4 fields: the three dispute-lifecycle kinds
// legitimately omit the trailing amount column, so NewDecoder disables
// csv.Reader's FieldsPerRecord check rather than padding every row to a
// uniform width.
//
// # Decode behavior
//
// NewDecoder validates the header row against the expected column names
// (case-insensitively) before returning a Decoder, so a mistyped or
// reordered header fails immediately rather than producing silently
// misparsed rows. Decoder.Next reads and validates exactly one row per
// call, returning io.EOF once the stream is exhausted — callers loop
// until they see io.EOF, exactly as cmd/ledgerstream's run function does.
//
// A malformed row — an unknown kind, a missing or negative amount on a
// Deposit/Withdrawal, or a present amount on a dispute-lifecycle row —
// aborts the stream with a descriptive error: this decoder does not skip
// bad rows and continue. This matches the specification's treatment of a
// malformed stream as an operator error (fix the input and re-run), not
// a per-row data-quality issue to paper over.
//
// # Output schema
//
//	client, available, held, total, locked
//
// Column semantics:
//
//	client     the account's client ID
//	available  Account.Available, rendered via money.Value.String
//	held       Account.Held, rendered via money.Value.String
//	total      Account.Total() == available + held; always computed at
//	           encode time, never itself read from anywhere
//	locked     Account.Locked(), i.e. State == Frozen, rendered "true"/
//	           "false"
//
// Encoder.WriteAccounts sorts the output by client in ascending numeric
// order before writing, so two runs over the same final account map
// always produce byte-identical output regardless of Go's randomized map
// iteration order — this determinism is what makes the CLI's output
// diffable and testable.
//
// # Thread-safety
//
// Neither Decoder nor Encoder is safe for concurrent use: each wraps a
// single encoding/csv.Reader or Writer with no synchronization, and both
// are used from exactly one goroutine (cmd/ledgerstream's sequential
// decode-feed-encode loop) in every call site in this codebase.
//
// # Performance
//
// Decoding and encoding are both O(1) per row — a fixed number of field
// parses or formats — so the overall cost of processing a stream is
// linear in its row count. Encoder additionally pays one O(n log n) sort
// over the client set before writing, which is negligible next to the
// I/O itself for any realistic account count.
//
// # Usage example
//
//	dec, err := ioformat.NewDecoder(inputFile)
//	if err != nil {
//	    return err
//	}
//	for {
//	    tx, err := dec.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    engine.Feed(tx)
//	}
//	accounts, _ := engine.Finish()
//	return ioformat.NewEncoder(outputFile).WriteAccounts(accounts)
//
// # See also
//
//   - internal/txn: the Transaction type Decoder produces.
//   - internal/account: the Account type Encoder consumes.
//   - cmd/ledgerstream: the only caller of both Decoder and Encoder.
package ioformat
