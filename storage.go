package writeup

import (
	"context"
	"sort"
)

// StorageScope selects one of the browser storage areas.
type StorageScope string

// Storage scopes, mirroring localStorage and sessionStorage.
const (
	ScopeLocal   StorageScope = "local"
	ScopeSession StorageScope = "session"
)

// Valid reports whether s is a known scope.
func (s StorageScope) Valid() bool {
	return s == ScopeLocal || s == ScopeSession
}

// Storage is flat, scoped key/value storage.
type Storage interface {
	// GetItem returns the value stored under key.
	// Returns ENOTFOUND if the key does not exist.
	GetItem(ctx context.Context, scope StorageScope, key string) (string, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, scope StorageScope, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, scope StorageScope, key string) error

	// Keys returns all keys in the scope in ascending order.
	Keys(ctx context.Context, scope StorageScope) ([]string, error)
}

var _ Storage = (StorageSnapshot)(nil)

// StorageSnapshot is an in-memory Storage, typically captured from a
// rendered browser page. The zero value is read-only; use
// NewStorageSnapshot for a writable one.
type StorageSnapshot map[StorageScope]map[string]string

// NewStorageSnapshot returns an empty snapshot with both scopes allocated.
func NewStorageSnapshot() StorageSnapshot {
	return StorageSnapshot{
		ScopeLocal:   {},
		ScopeSession: {},
	}
}

// GetItem implements Storage.
func (s StorageSnapshot) GetItem(_ context.Context, scope StorageScope, key string) (string, error) {
	v, ok := s[scope][key]
	if !ok {
		return "", Errorf(ENOTFOUND, "storage key %q not found", key)
	}
	return v, nil
}

// SetItem implements Storage.
func (s StorageSnapshot) SetItem(_ context.Context, scope StorageScope, key, value string) error {
	if !scope.Valid() {
		return Errorf(EINVALID, "invalid storage scope %q", scope)
	}
	if s[scope] == nil {
		s[scope] = make(map[string]string)
	}
	s[scope][key] = value
	return nil
}

// RemoveItem implements Storage.
func (s StorageSnapshot) RemoveItem(_ context.Context, scope StorageScope, key string) error {
	delete(s[scope], key)
	return nil
}

// Keys implements Storage.
func (s StorageSnapshot) Keys(_ context.Context, scope StorageScope) ([]string, error) {
	keys := make([]string, 0, len(s[scope]))
	for k := range s[scope] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ Storage = (LayeredStorage)(nil)

// LayeredStorage reads through a list of storages, returning the first hit.
// Writes and removals go to the first layer only.
type LayeredStorage []Storage

// GetItem implements Storage. Layers that fail with anything other than
// ENOTFOUND stop the lookup.
func (s LayeredStorage) GetItem(ctx context.Context, scope StorageScope, key string) (string, error) {
	for _, layer := range s {
		v, err := layer.GetItem(ctx, scope, key)
		if err == nil {
			return v, nil
		} else if ErrorCode(err) != ENOTFOUND {
			return "", err
		}
	}
	return "", Errorf(ENOTFOUND, "storage key %q not found", key)
}

// SetItem implements Storage.
func (s LayeredStorage) SetItem(ctx context.Context, scope StorageScope, key, value string) error {
	if len(s) == 0 {
		return Errorf(EUNAVAILABLE, "no storage configured")
	}
	return s[0].SetItem(ctx, scope, key, value)
}

// RemoveItem implements Storage.
func (s LayeredStorage) RemoveItem(ctx context.Context, scope StorageScope, key string) error {
	if len(s) == 0 {
		return nil
	}
	return s[0].RemoveItem(ctx, scope, key)
}

// Keys implements Storage. Keys present in several layers appear once.
func (s LayeredStorage) Keys(ctx context.Context, scope StorageScope) ([]string, error) {
	seen := make(map[string]struct{})
	for _, layer := range s {
		keys, err := layer.Keys(ctx, scope)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
