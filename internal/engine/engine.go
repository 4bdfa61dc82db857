// Package engine coordinates the sharded worker pool that drives the
// shard state machine over an incoming transaction stream. See doc.go
// for an overview.
package engine

import (
	"fmt"
	"sync"

	"github.com/dreamware/ledgerstream/internal/account"
	"github.com/dreamware/ledgerstream/internal/logging"
	"github.com/dreamware/ledgerstream/internal/metrics"
	"github.com/dreamware/ledgerstream/internal/shard"
	"github.com/dreamware/ledgerstream/internal/txn"
)

// defaultQueueCapacity is the default number of buffered transactions
// each shard's input channel can hold before Feed blocks.
const defaultQueueCapacity = 100

// Option configures an Engine at construction time.
type Option func(*config)

type config struct {
	queueCapacity int
	log           *logging.Logger
	registry      *metrics.Registry
}

// WithQueueCapacity overrides the per-shard channel buffer size.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.queueCapacity = n
		}
	}
}

// WithLogger attaches a logger; each shard gets a child logger prefixed
// "shard-N".
func WithLogger(l *logging.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithMetrics attaches a Prometheus registry that Finish merges every
// shard's counters into before returning.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *config) { c.registry = r }
}

// Engine fans a transaction stream out across nWorkers shards, routing
// each transaction by client mod nWorkers, and joins the per-shard
// account maps back into one result once every shard has drained.
//
// Routing every transaction for a given client to the same shard, always,
// is what lets each shard own its slice of state without locks: two
// transactions for the same client are never processed concurrently by
// different goroutines.
type Engine struct {
	shards  []*shard.Shard
	queues  []chan txn.Transaction
	wg      sync.WaitGroup
	cfg     config
	started bool
}

// New builds an Engine with nWorkers shards, each with its own dispute
// store. nWorkers must be at least 1.
func New(nWorkers int, opts ...Option) (*Engine, error) {
	if nWorkers < 1 {
		return nil, fmt.Errorf("engine: nWorkers must be >= 1, got %d", nWorkers)
	}

	cfg := config{queueCapacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		shards: make([]*shard.Shard, nWorkers),
		queues: make([]chan txn.Transaction, nWorkers),
		cfg:    cfg,
	}
	for i := 0; i < nWorkers; i++ {
		var shardLog *logging.Logger
		if cfg.log != nil {
			shardLog = cfg.log.Component(fmt.Sprintf("shard-%d", i))
		}
		sh, err := shard.New(i, shardLog)
		if err != nil {
			e.closeShards(i)
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.shards[i] = sh
		e.queues[i] = make(chan txn.Transaction, cfg.queueCapacity)
	}
	return e, nil
}

func (e *Engine) closeShards(upTo int) {
	for i := 0; i < upTo; i++ {
		_ = e.shards[i].Close()
	}
}

// Start launches one worker goroutine per shard. It must be called before
// Feed and at most once.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true
	for i, sh := range e.shards {
		e.wg.Add(1)
		go func(sh *shard.Shard, in <-chan txn.Transaction) {
			defer e.wg.Done()
			for tx := range in {
				sh.Apply(tx)
			}
		}(sh, e.queues[i])
	}
}

// Feed routes tx to its owning shard's queue, blocking if that shard's
// queue is full. Feed must not be called after Finish.
func (e *Engine) Feed(tx txn.Transaction) {
	idx := int(tx.Client) % len(e.shards)
	e.queues[idx] <- tx
}

// Finish closes every shard's queue, waits for all workers to drain, and
// returns the merged final account state across every client. Each
// client appears in exactly one shard's map, so the merge is a disjoint
// union with no conflicts to resolve.
func (e *Engine) Finish() (map[txn.Client]account.Account, error) {
	for _, q := range e.queues {
		close(q)
	}
	e.wg.Wait()

	result := make(map[txn.Client]account.Account)
	for _, sh := range e.shards {
		for client, acc := range sh.Accounts() {
			result[client] = acc
		}
		if e.cfg.registry != nil {
			e.cfg.registry.Merge(sh.Counters())
		}
	}

	var firstErr error
	for _, sh := range e.shards {
		if err := sh.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("engine: closing shard %d: %w", sh.ID(), err)
		}
	}
	return result, firstErr
}

// Run is a convenience wrapper that starts the engine, feeds every
// transaction from stream, and returns the merged final account state
// once stream is drained and closed.
func Run(nWorkers int, stream <-chan txn.Transaction, opts ...Option) (map[txn.Client]account.Account, error) {
	e, err := New(nWorkers, opts...)
	if err != nil {
		return nil, err
	}
	e.Start()
	for tx := range stream {
		e.Feed(tx)
	}
	return e.Finish()
}
