// Package disputestore implements the keyed dispute bookkeeping store: a
// mapping from (client, deposit tx_id) to the minimal record needed to
// resolve or charge back that deposit. See doc.go for an overview.
package disputestore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.etcd.io/bbolt"

	"github.com/dreamware/ledgerstream/internal/money"
	"github.com/dreamware/ledgerstream/internal/txn"
)

// defaultCacheCapacity bounds how many records New keeps resident at once.
// It is a modest default sized for the common case of a dispute window
// that is small relative to total deposit volume; long-running shards with
// a larger working set should call NewWithCapacity directly.
const defaultCacheCapacity = 4096

// ErrNotFound is returned by Get and Remove when no record exists for the
// given (client, tx_id) pair. A Dispute/Resolve/Chargeback referencing a
// withdrawal (never inserted) or an unknown tx_id fails this way.
var ErrNotFound = errors.New("disputestore: record not found")

// ErrNotAvailableForDispute is returned when a Dispute targets a record
// that is already Disputed, enforcing at-most-one-dispute-per-deposit.
var ErrNotAvailableForDispute = errors.New("disputestore: already disputed")

// ErrNoDisputeActive is returned when Resolve or Chargeback targets a
// record that is not currently Disputed.
var ErrNoDisputeActive = errors.New("disputestore: no dispute active")

var bucketName = []byte("disputes")

// Status is the lifecycle stage of a dispute record. Resolved/charged-back
// records are not represented: once a record leaves the store it is gone,
// which is what enforces at-most-one-dispute-per-deposit.
type Status uint8

const (
	// Undisputed is the state a record is created in on deposit.
	Undisputed Status = iota
	// Disputed is the state a record moves to on a successful Dispute.
	Disputed
)

// Record is the bookkeeping kept for a deposit that has not yet been
// resolved or charged back.
type Record struct {
	Value  money.Value
	Status Status
}

// Store is a single-writer, synchronous key-value store keyed by
// (client, tx_id). It is not safe for concurrent use: per the engine's
// sharding model, exactly one shard goroutine ever touches a given Store.
//
// Every write is mirrored into an ephemeral bbolt file before the resident
// cache is updated, so a physical write failure (e.g. disk full) never
// leaves the two tiers disagreeing with each other. The bbolt file is
// opened with NoSync: durability across process death is explicitly not
// required (spec: "writes need not be flushed").
//
// Residency is bounded: cache is a size-capped LRU, not an unbounded map.
// Insert always writes through to bbolt first, so an entry the cache
// evicts to make room for a newer one is never lost — Get transparently
// reloads it from bbolt on a cache miss and re-promotes it into the
// cache. This is what makes "capacity must not be bounded by RAM" a real,
// exercised property instead of an unused allowance: a shard holding many
// more open disputes than defaultCacheCapacity keeps working, at the cost
// of an extra bbolt read on a cold key.
type Store struct {
	cache *lru.Cache[uint64, Record]
	db    *bbolt.DB
	path  string
}

// New creates a Store backed by a fresh temporary bbolt database file and a
// resident cache capped at defaultCacheCapacity records. The file is
// removed when Close is called.
func New() (*Store, error) {
	return NewWithCapacity(defaultCacheCapacity)
}

// NewWithCapacity is New with an explicit resident-cache size. Capacity
// bounds RAM use, not correctness: keys evicted from the cache remain
// readable via the bbolt fallback in Get.
func NewWithCapacity(capacity int) (*Store, error) {
	f, err := os.CreateTemp("", "ledgerstream-disputestore-*.db")
	if err != nil {
		return nil, fmt.Errorf("disputestore: create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("disputestore: close temp file: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{NoSync: true})
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("disputestore: open spill file: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		os.Remove(path)
		return nil, fmt.Errorf("disputestore: create bucket: %w", err)
	}

	cache, err := lru.New[uint64, Record](capacity)
	if err != nil {
		db.Close()
		os.Remove(path)
		return nil, fmt.Errorf("disputestore: create resident cache: %w", err)
	}

	return &Store{
		cache: cache,
		db:    db,
		path:  path,
	}, nil
}

// Close releases the bbolt file and removes it from disk.
func (s *Store) Close() error {
	err := s.db.Close()
	if rmErr := os.Remove(s.path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

// Insert writes record unconditionally, creating or overwriting whatever
// was previously stored for (client, tx_id). The write always lands in
// bbolt before the cache, so a subsequent eviction never loses data.
func (s *Store) Insert(client txn.Client, txID txn.TxID, record Record) error {
	k := composeKey(client, txID)
	enc, err := encodeRecord(record)
	if err != nil {
		return fmt.Errorf("disputestore: encode record: %w", err)
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put(encodeKey(k), enc[:])
	}); err != nil {
		return fmt.Errorf("disputestore: spill insert: %w", err)
	}
	s.cache.Add(k, record)
	return nil
}

// Get returns the record stored for (client, tx_id), or ErrNotFound if
// none exists. A resident-cache hit returns immediately; a miss falls back
// to the bbolt mirror and, on success, re-promotes the record into the
// cache so a hot key that was evicted doesn't pay the disk read twice in a
// row.
func (s *Store) Get(client txn.Client, txID txn.TxID) (Record, error) {
	k := composeKey(client, txID)
	if r, ok := s.cache.Get(k); ok {
		return r, nil
	}
	return s.loadFromDisk(k)
}

// Remove deletes the record stored for (client, tx_id), failing with
// ErrNotFound if none exists anywhere — resident or evicted to disk.
func (s *Store) Remove(client txn.Client, txID txn.TxID) error {
	k := composeKey(client, txID)
	if _, ok := s.cache.Get(k); !ok {
		if _, err := s.loadFromDisk(k); err != nil {
			return err
		}
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete(encodeKey(k))
	}); err != nil {
		return fmt.Errorf("disputestore: spill remove: %w", err)
	}
	s.cache.Remove(k)
	return nil
}

// loadFromDisk reads a single record directly from the bbolt mirror,
// returning ErrNotFound if the key is absent there too. On success the
// record is added back to the resident cache.
func (s *Store) loadFromDisk(k uint64) (Record, error) {
	var (
		rec   Record
		found bool
	)
	if err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get(encodeKey(k))
		if v == nil {
			return nil
		}
		found = true
		rec = decodeRecord(v)
		return nil
	}); err != nil {
		return Record{}, fmt.Errorf("disputestore: read spill: %w", err)
	}
	if !found {
		return Record{}, ErrNotFound
	}
	s.cache.Add(k, rec)
	return rec, nil
}

// Rehydrate discards the resident cache and eagerly reloads it from the
// on-disk bbolt mirror. Per-key recovery already happens transparently on
// every Get/Remove miss; Rehydrate exists for bulk recovery instead — for
// example after an operator-triggered cache reset — where warming the
// cache with one disk scan is cheaper than paying the miss cost key by
// key. Capacity still applies: if the bucket holds more records than the
// cache's capacity, only the most recently scanned ones stay resident,
// and the rest remain reachable through the normal Get fallback.
func (s *Store) Rehydrate() error {
	s.cache.Purge()
	if err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			s.cache.Add(binary.BigEndian.Uint64(k), decodeRecord(v))
			return nil
		})
	}); err != nil {
		return fmt.Errorf("disputestore: rehydrate: %w", err)
	}
	return nil
}

// composeKey lays out client in the high 32 bits and tx_id in the low 32
// bits, so that all records for a given client sort contiguously under
// byte-order comparison — enabling the client-prefix range scans named as
// a future extension in the spec, without requiring one today.
func composeKey(client txn.Client, txID txn.TxID) uint64 {
	return (uint64(client) << 32) | uint64(txID)
}

func encodeKey(k uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], k)
	return b[:]
}

// encodeRecord packs a Record into its 17-byte wire form: a 16-byte Value
// followed by a one-byte status tag.
func encodeRecord(r Record) ([17]byte, error) {
	var out [17]byte
	vb, err := r.Value.Bytes()
	if err != nil {
		return out, err
	}
	copy(out[:16], vb[:])
	out[16] = byte(r.Status)
	return out, nil
}

func decodeRecord(b []byte) Record {
	var vb [16]byte
	copy(vb[:], b[:16])
	return Record{Value: money.FromBytes(vb), Status: Status(b[16])}
}
