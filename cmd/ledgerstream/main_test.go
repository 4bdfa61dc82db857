package main

import (
	"strconv"
	"strings"
	"testing"

	"github.com/dreamware/ledgerstream/internal/engine"
	"github.com/dreamware/ledgerstream/internal/ioformat"
	"github.com/dreamware/ledgerstream/internal/money"
)

// row is a parsed output line, compared by value rather than by exact
// decimal string rendering (shopspring/decimal preserves operand scale,
// so "0" and "0.0" are both valid renderings of the same value depending
// on how it was computed).
type row struct {
	client    string
	available money.Value
	held      money.Value
	total     money.Value
	locked    bool
}

func mv(t *testing.T, s string) money.Value {
	t.Helper()
	v, err := money.Parse(s)
	if err != nil {
		t.Fatalf("money.Parse(%q): %v", s, err)
	}
	return v
}

// process runs input through the decoder and a 2-worker engine, returning
// the final account rows keyed by client.
func process(t *testing.T, input string) map[string]row {
	t.Helper()
	dec, err := ioformat.NewDecoder(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	eng, err := engine.New(2)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	eng.Start()

	for {
		tx, err := dec.Next()
		if err != nil {
			break
		}
		eng.Feed(tx)
	}
	accounts, err := eng.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	var buf strings.Builder
	if err := ioformat.NewEncoder(&buf).WriteAccounts(accounts); err != nil {
		t.Fatalf("WriteAccounts: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	out := make(map[string]row)
	for _, line := range lines[1:] { // drop header
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			t.Fatalf("malformed output row %q", line)
		}
		locked, err := strconv.ParseBool(fields[4])
		if err != nil {
			t.Fatalf("parse locked field %q: %v", fields[4], err)
		}
		out[fields[0]] = row{
			client:    fields[0],
			available: mv(t, fields[1]),
			held:      mv(t, fields[2]),
			total:     mv(t, fields[3]),
			locked:    locked,
		}
	}
	return out
}

func wantRow(t *testing.T, r row, available, held, total string, locked bool) {
	t.Helper()
	if r.available.Cmp(mv(t, available)) != 0 {
		t.Errorf("available = %s, want %s", r.available, available)
	}
	if r.held.Cmp(mv(t, held)) != 0 {
		t.Errorf("held = %s, want %s", r.held, held)
	}
	if r.total.Cmp(mv(t, total)) != 0 {
		t.Errorf("total = %s, want %s", r.total, total)
	}
	if r.locked != locked {
		t.Errorf("locked = %v, want %v", r.locked, locked)
	}
}

func TestScenarioInsufficientFundsWithdrawalRejected(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
`
	got := process(t, input)
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(got), got)
	}
	wantRow(t, got["1"], "1.5", "0", "1.5", false)
	wantRow(t, got["2"], "2.0", "0", "2.0", false)
}

func TestScenarioResolveReturnsToPreDisputeState(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 10.0
deposit, 1, 2, 1.0
dispute, 1, 2,
resolve, 1, 2,
`
	got := process(t, input)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(got), got)
	}
	wantRow(t, got["1"], "11.0", "0", "11.0", false)
}

func TestScenarioChargebackLocksAccount(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 10.0
deposit, 1, 2, 1.0
dispute, 1, 2,
chargeback, 1, 2,
`
	got := process(t, input)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(got), got)
	}
	wantRow(t, got["1"], "10.0", "0", "10.0", true)
}

func TestScenarioDisputeAfterWithdrawalGoesNegative(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 5.0
withdrawal, 1, 2, 3.0
dispute, 1, 1,
`
	got := process(t, input)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(got), got)
	}
	wantRow(t, got["1"], "-3.0", "5.0", "2.0", false)
}

func TestScenarioChargebackWithoutDisputeIsNoop(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 1.0
chargeback, 1, 1,
`
	got := process(t, input)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(got), got)
	}
	wantRow(t, got["1"], "1.0", "0", "1.0", false)
}

func TestScenarioFrozenAccountIgnoresFurtherTransactions(t *testing.T) {
	input := `type, client, tx, amount
deposit, 1, 1, 10.0
dispute, 1, 1,
chargeback, 1, 1,
deposit, 1, 2, 500.0
withdrawal, 1, 3, 0.01
`
	got := process(t, input)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(got), got)
	}
	wantRow(t, got["1"], "0", "0", "0", true)
}
