// Package ioformat implements the tabular CSV wire format for this
// engine: a 4-column input schema (type, client, tx, amount) and a
// 5-column output schema (client, available, held, total, locked). See
// doc.go for an overview.
package ioformat

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dreamware/ledgerstream/internal/money"
	"github.com/dreamware/ledgerstream/internal/txn"
)

// header is the expected (case-insensitive) input column order.
var header = []string{"type", "client", "tx", "amount"}

// Decoder reads Transaction records from an input CSV stream.
type Decoder struct {
	r *csv.Reader
}

// NewDecoder builds a Decoder over r. Leading/trailing whitespace in
// every field is trimmed, and rows with fewer or more fields than the
// header are accepted (FieldsPerRecord disabled) since the three
// dispute-lifecycle kinds omit the trailing amount column.
func NewDecoder(r io.Reader) (*Decoder, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ioformat: read header: %w", err)
	}
	for i, col := range first {
		if !strings.EqualFold(strings.TrimSpace(col), header[i]) {
			return nil, fmt.Errorf("ioformat: unexpected header column %d: %q", i, col)
		}
	}
	return &Decoder{r: cr}, nil
}

// Next reads and validates the next Transaction, returning io.EOF once
// the stream is exhausted. A malformed row — an unknown kind, a missing
// or negative amount on a Deposit/Withdrawal, or a present amount on a
// dispute-lifecycle row — aborts the stream with a descriptive error:
// this decoder does not skip bad rows and continue.
func (d *Decoder) Next() (txn.Transaction, error) {
	row, err := d.r.Read()
	if err != nil {
		return txn.Transaction{}, err
	}
	return parseRow(row)
}

func parseRow(row []string) (txn.Transaction, error) {
	if len(row) < 3 {
		return txn.Transaction{}, fmt.Errorf("ioformat: row has %d fields, want at least 3", len(row))
	}

	kind, err := parseKind(row[0])
	if err != nil {
		return txn.Transaction{}, err
	}

	client, err := parseClient(row[1])
	if err != nil {
		return txn.Transaction{}, err
	}

	txID, err := parseTxID(row[2])
	if err != nil {
		return txn.Transaction{}, err
	}

	amount := ""
	if len(row) > 3 {
		amount = strings.TrimSpace(row[3])
	}

	switch kind {
	case txn.Deposit, txn.Withdrawal:
		if amount == "" {
			return txn.Transaction{}, fmt.Errorf("ioformat: %s requires an amount", kind)
		}
		value, err := money.Parse(amount)
		if err != nil {
			return txn.Transaction{}, fmt.Errorf("ioformat: parse amount: %w", err)
		}
		if value.IsNegative() {
			return txn.Transaction{}, fmt.Errorf("ioformat: %s amount %s must not be negative", kind, value)
		}
		return txn.Transaction{Kind: kind, Client: client, TxID: txID, Value: value}, nil
	default:
		if amount != "" {
			return txn.Transaction{}, fmt.Errorf("ioformat: %s must not carry an amount", kind)
		}
		return txn.Transaction{Kind: kind, Client: client, TxID: txID}, nil
	}
}

func parseKind(s string) (txn.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return txn.Deposit, nil
	case "withdrawal":
		return txn.Withdrawal, nil
	case "dispute":
		return txn.Dispute, nil
	case "resolve":
		return txn.Resolve, nil
	case "chargeback":
		return txn.Chargeback, nil
	default:
		return 0, fmt.Errorf("ioformat: unknown transaction kind %q", s)
	}
}

func parseClient(s string) (txn.Client, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("ioformat: parse client: %w", err)
	}
	return txn.Client(n), nil
}

func parseTxID(s string) (txn.TxID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("ioformat: parse tx: %w", err)
	}
	return txn.TxID(n), nil
}
