package engine

import (
	"reflect"
	"testing"

	"github.com/dreamware/ledgerstream/internal/account"
	"github.com/dreamware/ledgerstream/internal/money"
	"github.com/dreamware/ledgerstream/internal/txn"
)

func mv(t *testing.T, s string) money.Value {
	t.Helper()
	v, err := money.Parse(s)
	if err != nil {
		t.Fatalf("money.Parse(%q): %v", s, err)
	}
	return v
}

func runStream(t *testing.T, nWorkers int, txs []txn.Transaction) map[txn.Client]account.Account {
	t.Helper()
	e, err := New(nWorkers)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Start()
	for _, tx := range txs {
		e.Feed(tx)
	}
	result, err := e.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return result
}

func TestDepositRoundTrip(t *testing.T) {
	result := runStream(t, 4, []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "5.0")},
		{Kind: txn.Deposit, Client: 2, TxID: 2, Value: mv(t, "3.0")},
	})

	if result[1].Available.Cmp(mv(t, "5.0")) != 0 {
		t.Fatalf("client 1 available = %s, want 5.0", result[1].Available)
	}
	if result[2].Available.Cmp(mv(t, "3.0")) != 0 {
		t.Fatalf("client 2 available = %s, want 3.0", result[2].Available)
	}
}

func TestFundsConservedUnderResolve(t *testing.T) {
	result := runStream(t, 2, []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "20.0")},
		{Kind: txn.Dispute, Client: 1, TxID: 1},
		{Kind: txn.Resolve, Client: 1, TxID: 1},
	})

	acc := result[1]
	if acc.Total().Cmp(mv(t, "20.0")) != 0 {
		t.Fatalf("total = %s, want 20.0 conserved across dispute/resolve", acc.Total())
	}
	if acc.Held.Cmp(money.Zero) != 0 {
		t.Fatalf("held = %s, want 0 after resolve", acc.Held)
	}
}

func TestChargebackFreezesAndDebits(t *testing.T) {
	result := runStream(t, 2, []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "20.0")},
		{Kind: txn.Dispute, Client: 1, TxID: 1},
		{Kind: txn.Chargeback, Client: 1, TxID: 1},
	})

	acc := result[1]
	if !acc.Locked() {
		t.Fatal("expected account to be locked after chargeback")
	}
	if acc.Total().Cmp(money.Zero) != 0 {
		t.Fatalf("total = %s, want 0 after chargeback", acc.Total())
	}
}

func TestAtMostOneDisputePerDeposit(t *testing.T) {
	result := runStream(t, 2, []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "20.0")},
		{Kind: txn.Dispute, Client: 1, TxID: 1},
		{Kind: txn.Dispute, Client: 1, TxID: 1},
	})

	if result[1].Held.Cmp(mv(t, "20.0")) != 0 {
		t.Fatalf("held = %s, want 20.0 (second dispute is a no-op)", result[1].Held)
	}
}

func TestWithdrawalsNotDisputable(t *testing.T) {
	result := runStream(t, 2, []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "20.0")},
		{Kind: txn.Withdrawal, Client: 1, TxID: 2, Value: mv(t, "5.0")},
		{Kind: txn.Dispute, Client: 1, TxID: 2},
	})

	if result[1].Held.Cmp(money.Zero) != 0 {
		t.Fatalf("held = %s, want 0 (withdrawal must not be disputable)", result[1].Held)
	}
}

func TestHeldNeverNegative(t *testing.T) {
	result := runStream(t, 2, []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "20.0")},
		{Kind: txn.Resolve, Client: 1, TxID: 1},
		{Kind: txn.Chargeback, Client: 1, TxID: 1},
	})

	if result[1].Held.IsNegative() {
		t.Fatalf("held went negative: %s", result[1].Held)
	}
}

func TestFreezeIsTerminal(t *testing.T) {
	result := runStream(t, 2, []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "20.0")},
		{Kind: txn.Dispute, Client: 1, TxID: 1},
		{Kind: txn.Chargeback, Client: 1, TxID: 1},
		{Kind: txn.Deposit, Client: 1, TxID: 2, Value: mv(t, "100.0")},
		{Kind: txn.Withdrawal, Client: 1, TxID: 3, Value: mv(t, "0.01")},
	})

	acc := result[1]
	if acc.Total().Cmp(money.Zero) != 0 {
		t.Fatalf("total = %s, want 0: no operation on a frozen account may succeed", acc.Total())
	}
}

func TestNoPhantomAccounts(t *testing.T) {
	result := runStream(t, 2, []txn.Transaction{
		{Kind: txn.Withdrawal, Client: 1, TxID: 1, Value: mv(t, "5.0")},
		{Kind: txn.Dispute, Client: 2, TxID: 1},
		{Kind: txn.Resolve, Client: 3, TxID: 1},
		{Kind: txn.Chargeback, Client: 4, TxID: 1},
	})

	if len(result) != 0 {
		t.Fatalf("expected no accounts to be created by failed operations, got %d", len(result))
	}
}

// TestShardCountInvariant asserts that the final set of (client, account)
// pairs produced by a stream does not depend on how many shards it is
// split across: client-keyed operations never interact across clients,
// so the partition of the keyspace is an implementation detail of
// throughput, not of correctness.
func TestShardCountInvariant(t *testing.T) {
	stream := []txn.Transaction{
		{Kind: txn.Deposit, Client: 1, TxID: 1, Value: mv(t, "10.0")},
		{Kind: txn.Deposit, Client: 2, TxID: 2, Value: mv(t, "5.0")},
		{Kind: txn.Deposit, Client: 3, TxID: 3, Value: mv(t, "7.5")},
		{Kind: txn.Withdrawal, Client: 1, TxID: 4, Value: mv(t, "2.0")},
		{Kind: txn.Dispute, Client: 2, TxID: 2},
		{Kind: txn.Chargeback, Client: 2, TxID: 2},
		{Kind: txn.Deposit, Client: 4, TxID: 5, Value: mv(t, "1.0")},
		{Kind: txn.Dispute, Client: 4, TxID: 5},
		{Kind: txn.Resolve, Client: 4, TxID: 5},
	}

	baseline := runStream(t, 1, stream)
	for _, n := range []int{4, 8} {
		got := runStream(t, n, stream)
		if !reflect.DeepEqual(got, baseline) {
			t.Fatalf("nWorkers=%d result differs from nWorkers=1 baseline:\n got=%+v\nwant=%+v", n, got, baseline)
		}
	}
}
