package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

var bucketTrademarks = []byte("trademarks")

// ErrNotFound is returned when no record exists for an application number.
var ErrNotFound = errors.New("trademark not found")

// Store is a bbolt-backed trademark repository. A single bucket holds
// msgpack-encoded records keyed by application number. Writes are
// transactional; a crash mid-write cannot corrupt committed data.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path and ensures the bucket
// exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTrademarks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces a record. The application number is the key and
// must be non-empty.
func (s *Store) Put(tm *Trademark) error {
	if tm == nil || tm.ApplicationNumber == "" {
		return fmt.Errorf("missing application number")
	}
	data, err := msgpack.Marshal(tm)
	if err != nil {
		return fmt.Errorf("encode %s: %w", tm.ApplicationNumber, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTrademarks).Put([]byte(tm.ApplicationNumber), data)
	})
}

// PutBatch writes records in a single transaction.
func (s *Store) PutBatch(records []*Trademark) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTrademarks)
		for _, tm := range records {
			if tm == nil || tm.ApplicationNumber == "" {
				log.Warn("skipping record without application number")
				continue
			}
			data, err := msgpack.Marshal(tm)
			if err != nil {
				return fmt.Errorf("encode %s: %w", tm.ApplicationNumber, err)
			}
			if err := b.Put([]byte(tm.ApplicationNumber), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the record for an application number, or ErrNotFound.
func (s *Store) Get(applicationNumber string) (*Trademark, error) {
	var tm *Trademark
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTrademarks).Get([]byte(applicationNumber))
		if data == nil {
			return ErrNotFound
		}
		tm = &Trademark{}
		if err := msgpack.Unmarshal(data, tm); err != nil {
			return fmt.Errorf("decode %s: %w", applicationNumber, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tm, nil
}

// Delete removes a record. It reports whether the record existed.
func (s *Store) Delete(applicationNumber string) (bool, error) {
	existed := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTrademarks)
		key := []byte(applicationNumber)
		if b.Get(key) == nil {
			return nil
		}
		existed = true
		return b.Delete(key)
	})
	return existed, err
}

// ForEach streams every record through fn inside one read transaction.
// fn returning an error stops the walk.
func (s *Store) ForEach(fn func(*Trademark) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTrademarks).ForEach(func(k, v []byte) error {
			tm := &Trademark{}
			if err := msgpack.Unmarshal(v, tm); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			return fn(tm)
		})
	})
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketTrademarks).Stats().KeyN
		return nil
	})
	return n, err
}

// RegisterStatuses returns the distinct non-empty register statuses,
// sorted.
func (s *Store) RegisterStatuses() ([]string, error) {
	seen := map[string]bool{}
	err := s.ForEach(func(tm *Trademark) error {
		if tm.RegisterStatus != "" {
			seen[tm.RegisterStatus] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedKeys(seen), nil
}

// MainProductCodes returns the distinct main classification codes, sorted.
func (s *Store) MainProductCodes() ([]string, error) {
	seen := map[string]bool{}
	err := s.ForEach(func(tm *Trademark) error {
		for _, code := range tm.MainProductCodes {
			if code != "" {
				seen[code] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedKeys(seen), nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
