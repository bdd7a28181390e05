// Package bbolt provides a BoltDB-backed snapshot store.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/louisbranch/emergent.world/internal/storage"
)

const snapshotBucket = "snapshot"

// Store provides a BoltDB-backed snapshot store.
type Store struct {
	db *bbolt.DB
}

var _ storage.SnapshotStore = (*Store)(nil)

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket)); err != nil {
			return fmt.Errorf("create bucket %s: %w", snapshotBucket, err)
		}
		return nil
	})
}

// Put persists the latest snapshot for a domain, replacing any previous
// one.
func (s *Store) Put(ctx context.Context, snap storage.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(snap.Domain) == "" {
		return fmt.Errorf("snapshot domain is required")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s is missing", snapshotBucket)
		}
		if err := bucket.Put([]byte(snap.Domain), data); err != nil {
			return fmt.Errorf("put snapshot: %w", err)
		}
		return nil
	})
}

// Get returns the latest snapshot for a domain.
func (s *Store) Get(ctx context.Context, domain string) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Snapshot{}, err
	}
	if s == nil || s.db == nil {
		return storage.Snapshot{}, fmt.Errorf("storage is not configured")
	}

	var snap storage.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s is missing", snapshotBucket)
		}
		data := bucket.Get([]byte(domain))
		if data == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("unmarshal snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return storage.Snapshot{}, err
	}
	return snap, nil
}
