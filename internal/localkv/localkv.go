// Copyright (c) 2026 The L.U.M.A Authors <content-tools@luma.dev>
// All rights reserved. See LICENSE for details.

// Package localkv provides a capacity-bounded local key-value cache backed
// by BadgerDB. It is the fallback read source when PostgreSQL is
// unreachable at startup; writes beyond the configured per-value budget are
// rejected with ErrQuotaExceeded so callers can degrade their payloads.
package localkv

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// ErrQuotaExceeded is returned by Set when the value exceeds the store's
// configured byte budget.
var ErrQuotaExceeded = errors.New("localkv: value exceeds capacity budget")

// DefaultMaxValueBytes bounds a single cached value to roughly a browser
// local-storage quota. Policy, not a hard requirement.
const DefaultMaxValueBytes = 10 << 20

// Store is a thin wrapper over a BadgerDB instance exposing the string-keyed
// get/set/delete surface the snapshot serializer needs.
type Store struct {
	db       *badger.DB
	maxValue int64
}

// Open opens (or creates) a persistent store at the given directory.
// maxValueBytes <= 0 selects DefaultMaxValueBytes.
func Open(path string, maxValueBytes int64) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("localkv open %s: %w", path, err)
	}
	return newStore(db, maxValueBytes), nil
}

// OpenInMemory opens a non-persistent store. Used by tests and by
// deployments that want the snapshot fallback disabled across restarts.
func OpenInMemory(maxValueBytes int64) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("localkv open in-memory: %w", err)
	}
	return newStore(db, maxValueBytes), nil
}

func newStore(db *badger.DB, maxValueBytes int64) *Store {
	if maxValueBytes <= 0 {
		maxValueBytes = DefaultMaxValueBytes
	}
	return &Store{db: db, maxValue: maxValueBytes}
}

// Get returns the value stored under key. The second return is false on a
// miss; err is reserved for real storage failures.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("localkv get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores val under key, enforcing the capacity budget.
func (s *Store) Set(key string, val []byte) error {
	if int64(len(val)) > s.maxValue {
		return fmt.Errorf("%w: %d bytes (budget %d)", ErrQuotaExceeded, len(val), s.maxValue)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
	if err != nil {
		return fmt.Errorf("localkv set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("localkv delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying BadgerDB.
func (s *Store) Close() error {
	return s.db.Close()
}
