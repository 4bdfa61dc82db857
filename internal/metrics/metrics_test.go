package metrics

import (
	"strings"
	"testing"

	"github.com/dreamware/ledgerstream/internal/txn"
)

func TestShardCountersSnapshot(t *testing.T) {
	var c ShardCounters
	c.RecordProcessed(txn.Deposit)
	c.RecordProcessed(txn.Deposit)
	c.RecordRejected(txn.Withdrawal)

	snap := c.Snapshot()
	if snap.Processed["deposit"] != 2 {
		t.Fatalf("processed deposit = %d, want 2", snap.Processed["deposit"])
	}
	if snap.Rejected["withdrawal"] != 1 {
		t.Fatalf("rejected withdrawal = %d, want 1", snap.Rejected["withdrawal"])
	}
	if snap.Processed["chargeback"] != 0 {
		t.Fatalf("processed chargeback = %d, want 0", snap.Processed["chargeback"])
	}
}

func TestRegistryMergeAndSummary(t *testing.T) {
	reg := NewRegistry()

	var shardA, shardB ShardCounters
	shardA.RecordProcessed(txn.Deposit)
	shardA.RecordProcessed(txn.Deposit)
	shardB.RecordProcessed(txn.Deposit)
	shardB.RecordRejected(txn.Chargeback)

	reg.Merge(&shardA)
	reg.Merge(&shardB)

	summary := reg.Summary()
	if !strings.Contains(summary, "deposit=3/0") {
		t.Fatalf("summary %q missing deposit=3/0", summary)
	}
	if !strings.Contains(summary, "chargeback=0/1") {
		t.Fatalf("summary %q missing chargeback=0/1", summary)
	}
}
