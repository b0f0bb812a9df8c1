package snapshot

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketSnapshots = "snapshots"

// BoltStore keeps snapshots in a single bucket of a bbolt database.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens or creates the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: init %s: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

// Put stores data under key.
func (s *BoltStore) Put(_ context.Context, key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put([]byte(key), data)
	})
}

// Get returns a copy of the data under key.
func (s *BoltStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSnapshots)).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

// Keys lists stored keys in order.
func (s *BoltStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketSnapshots)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
