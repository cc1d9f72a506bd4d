package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/writeup"
)

// Compile-time interface verification.
var _ writeup.Storage = (*Store)(nil)

// Item is a stored entry with its modification time.
type Item struct {
	Scope     writeup.StorageScope
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Store implements writeup.Storage using SQLite.
type Store struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db, Now: time.Now}
}

// GetItem returns the value stored under key.
func (s *Store) GetItem(ctx context.Context, scope writeup.StorageScope, key string) (string, error) {
	if !scope.Valid() {
		return "", writeup.Errorf(writeup.EINVALID, "invalid storage scope %q", scope)
	}

	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM storage WHERE scope = ? AND key = ?
	`, string(scope), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", writeup.Errorf(writeup.ENOTFOUND, "storage key %q not found", key)
	} else if err != nil {
		return "", fmt.Errorf("failed to get storage item: %w", err)
	}
	return value, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *Store) SetItem(ctx context.Context, scope writeup.StorageScope, key, value string) error {
	if !scope.Valid() {
		return writeup.Errorf(writeup.EINVALID, "invalid storage scope %q", scope)
	}
	if key == "" {
		return writeup.Errorf(writeup.EINVALID, "storage key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage (scope, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, string(scope), key, value, s.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set storage item: %w", err)
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *Store) RemoveItem(ctx context.Context, scope writeup.StorageScope, key string) error {
	if !scope.Valid() {
		return writeup.Errorf(writeup.EINVALID, "invalid storage scope %q", scope)
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM storage WHERE scope = ? AND key = ?
	`, string(scope), key); err != nil {
		return fmt.Errorf("failed to remove storage item: %w", err)
	}
	return nil
}

// Keys returns all keys in the scope in ascending order.
func (s *Store) Keys(ctx context.Context, scope writeup.StorageScope) ([]string, error) {
	items, err := s.Items(ctx, scope)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	return keys, nil
}

// Items returns all entries in the scope ordered by key.
func (s *Store) Items(ctx context.Context, scope writeup.StorageScope) ([]Item, error) {
	if !scope.Valid() {
		return nil, writeup.Errorf(writeup.EINVALID, "invalid storage scope %q", scope)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value, updated_at FROM storage
		WHERE scope = ?
		ORDER BY key
	`, string(scope))
	if err != nil {
		return nil, fmt.Errorf("failed to list storage items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item := Item{Scope: scope}
		var updatedAt string
		if err := rows.Scan(&item.Key, &item.Value, &updatedAt); err != nil {
			return nil, err
		}
		if item.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear removes every entry in the scope.
func (s *Store) Clear(ctx context.Context, scope writeup.StorageScope) error {
	if !scope.Valid() {
		return writeup.Errorf(writeup.EINVALID, "invalid storage scope %q", scope)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM storage WHERE scope = ?`, string(scope)); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}
