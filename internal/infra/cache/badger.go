// Package cache wraps an embedded dgraph-io/badger/v4 store used as a
// process-local memoization layer (spec §4.C: merchant-normalization
// fallback results).
package cache

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Store is a thin TTL-aware key/value wrapper over *badger.DB.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger store rooted at dir. A
// temp-dir path is fine: the cache is a performance memoization layer,
// never the system of record.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying badger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns (value, true) if key exists and has not expired.
func (s *Store) Get(key string) (string, bool) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return "", false
		}
		return "", false
	}
	return value, true
}

// SetWithTTL stores key/value, expiring after ttl.
func (s *Store) SetWithTTL(key, value string, ttl time.Duration) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), []byte(value)).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}
