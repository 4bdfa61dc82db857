package ioformat

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dreamware/ledgerstream/internal/txn"
)

func decodeAll(t *testing.T, input string) ([]txn.Transaction, error) {
	t.Helper()
	dec, err := NewDecoder(strings.NewReader(input))
	if err != nil {
		return nil, err
	}
	var out []txn.Transaction
	for {
		tx, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, tx)
	}
}

func TestDecodeBasicStream(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
`
	txs, err := decodeAll(t, input)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(txs) != 5 {
		t.Fatalf("got %d transactions, want 5", len(txs))
	}
	if txs[0].Kind != txn.Deposit || txs[0].Client != 1 || txs[0].TxID != 1 {
		t.Fatalf("unexpected first transaction: %+v", txs[0])
	}
	if txs[3].Kind != txn.Withdrawal || txs[3].Value.String() != "1.5" {
		t.Fatalf("unexpected fourth transaction: %+v", txs[3])
	}
}

func TestDecodeDisputeLifecycleHasNoAmount(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 5.0
dispute, 1, 1,
resolve, 1, 1
`
	txs, err := decodeAll(t, input)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	if txs[1].Kind != txn.Dispute {
		t.Fatalf("expected dispute, got %+v", txs[1])
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	input := "type, client, tx, amount\nfrobnicate, 1, 1, 1.0\n"
	if _, err := decodeAll(t, input); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDecodeRejectsNegativeAmount(t *testing.T) {
	input := "type, client, tx, amount\ndeposit, 1, 1, -1.0\n"
	if _, err := decodeAll(t, input); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestDecodeRejectsMissingAmount(t *testing.T) {
	input := "type, client, tx, amount\ndeposit, 1, 1\n"
	if _, err := decodeAll(t, input); err == nil {
		t.Fatal("expected error for missing deposit amount")
	}
}

func TestDecodeRejectsAmountOnDispute(t *testing.T) {
	input := "type, client, tx, amount\ndispute, 1, 1, 5.0\n"
	if _, err := decodeAll(t, input); err == nil {
		t.Fatal("expected error for amount present on dispute")
	}
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	input := "kind, client, tx, amount\ndeposit, 1, 1, 5.0\n"
	if _, err := NewDecoder(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for unexpected header")
	}
}
