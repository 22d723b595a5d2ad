// Package storage is the local key-value store that keeps user settings, the
// remote image cache and the capture handoff between runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Well known keys.
const (
	KeyUserSettings  = "userSettings"
	KeyCapturedImage = "annotateshot_captured_image"
	KeyImageSource   = "annotateshot_image_source"
	cachedImagePfx   = "cachedImage_"
)

// DefaultCacheAge is how long fetched images are kept before PruneCache
// removes them.
const DefaultCacheAge = 30 * 24 * time.Hour

// CachedImageKey is the key under which the data URL fetched from url is kept.
func CachedImageKey(url string) string { return cachedImagePfx + url }

// ErrNotFound is returned by Get when a key is absent.
var ErrNotFound = errors.New("key not found")

const schema = `
create table if not exists kv (
    key text primary key,
    value text not null,
    updated_at integer not null
)`

// Store is a string key-value table in a sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own database
		db.SetMaxOpenConns(1)
	}
	s, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle and makes sure the table exists.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("while creating table 'kv': %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `select value from kv where key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
insert into kv (key, value, updated_at) values (?, ?, ?)
on conflict(key) do update set value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// TrySet is Set for best-effort writes: failures are logged and dropped.
func (s *Store) TrySet(ctx context.Context, key, value string) bool {
	if err := s.Set(ctx, key, value); err != nil {
		log.Printf("storage: %v", err)
		return false
	}
	return true
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `delete from kv where key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys lists the keys starting with prefix in lexical order.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `select key from kv where substr(key, 1, ?) = ? order by key`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// PruneCache drops cached images older than maxAge and returns how many were
// removed.
func (s *Store) PruneCache(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixNano()
	res, err := s.db.ExecContext(ctx, `delete from kv where substr(key, 1, ?) = ? and updated_at < ?`,
		len(cachedImagePfx), cachedImagePfx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}

// IsCacheKey reports whether key names a cached remote image.
func IsCacheKey(key string) bool { return strings.HasPrefix(key, cachedImagePfx) }
