// Package bbolt provides the BoltDB-backed durable store for the
// storefront's local slots: session credentials, the cart mirror, and
// display preferences.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/paulkamani9/overtune/internal/cart"
	"github.com/paulkamani9/overtune/internal/session"
	"github.com/paulkamani9/overtune/internal/storage"
)

const (
	sessionBucket     = "session"
	cartBucket        = "cart"
	preferencesBucket = "preferences"
)

var (
	credentialsKey = []byte("credentials")
	entriesKey     = []byte("entries")
	themeKey       = []byte("theme")
)

// Store provides a BoltDB-backed slot store. A malformed stored value is
// reported as storage.ErrNotFound so callers fall back to their zero value
// instead of failing.
type Store struct {
	db *bbolt.DB
}

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

// SaveCredentials persists the session credential record as a unit.
func (s *Store) SaveCredentials(ctx context.Context, creds session.Credentials) error {
	return s.put(ctx, sessionBucket, credentialsKey, creds)
}

// LoadCredentials fetches the persisted session credential record.
func (s *Store) LoadCredentials(ctx context.Context) (session.Credentials, error) {
	var creds session.Credentials
	if err := s.get(ctx, sessionBucket, credentialsKey, &creds); err != nil {
		return session.Credentials{}, err
	}
	return creds, nil
}

// DeleteCredentials removes the persisted session credential record.
func (s *Store) DeleteCredentials(ctx context.Context) error {
	return s.delete(ctx, sessionBucket, credentialsKey)
}

// SaveCart overwrites the persisted cart with the full entry list.
func (s *Store) SaveCart(ctx context.Context, entries []cart.Entry) error {
	if entries == nil {
		entries = []cart.Entry{}
	}
	return s.put(ctx, cartBucket, entriesKey, entries)
}

// LoadCart fetches the persisted cart entry list.
func (s *Store) LoadCart(ctx context.Context) ([]cart.Entry, error) {
	var entries []cart.Entry
	if err := s.get(ctx, cartBucket, entriesKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveTheme persists the display theme preference.
func (s *Store) SaveTheme(ctx context.Context, theme string) error {
	return s.put(ctx, preferencesBucket, themeKey, theme)
}

// LoadTheme fetches the persisted display theme preference.
func (s *Store) LoadTheme(ctx context.Context) (string, error) {
	var theme string
	if err := s.get(ctx, preferencesBucket, themeKey, &theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (s *Store) put(ctx context.Context, bucketName string, key []byte, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", bucketName, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", bucketName)
		}
		return bucket.Put(key, payload)
	})
}

func (s *Store) get(ctx context.Context, bucketName string, key []byte, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", bucketName)
		}
		payload := bucket.Get(key)
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, target); err != nil {
			// Malformed records count as absent, not as faults.
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *Store) delete(ctx context.Context, bucketName string, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", bucketName)
		}
		return bucket.Delete(key)
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{sessionBucket, cartBucket, preferencesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
