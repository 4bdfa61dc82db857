package ioformat

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dreamware/ledgerstream/internal/account"
	"github.com/dreamware/ledgerstream/internal/txn"
)

// outputHeader is the 5-column output schema.
var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Encoder writes the final account snapshot as CSV.
type Encoder struct {
	w *csv.Writer
}

// NewEncoder builds an Encoder over w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: csv.NewWriter(w)}
}

// WriteAccounts writes the header followed by one row per client, sorted
// by client ID for deterministic output. total is always available+held,
// computed rather than stored.
func (e *Encoder) WriteAccounts(accounts map[txn.Client]account.Account) error {
	if err := e.w.Write(outputHeader); err != nil {
		return fmt.Errorf("ioformat: write header: %w", err)
	}

	clients := make([]txn.Client, 0, len(accounts))
	for c := range accounts {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i] < clients[j] })

	for _, c := range clients {
		acc := accounts[c]
		row := []string{
			strconv.FormatUint(uint64(c), 10),
			acc.Available.String(),
			acc.Held.String(),
			acc.Total().String(),
			strconv.FormatBool(acc.Locked()),
		}
		if err := e.w.Write(row); err != nil {
			return fmt.Errorf("ioformat: write row for client %d: %w", c, err)
		}
	}

	e.w.Flush()
	return e.w.Error()
}
