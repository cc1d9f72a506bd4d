package mock

import (
	"context"

	"github.com/fwojciec/writeup"
)

var (
	_ writeup.Storage          = (*Storage)(nil)
	_ writeup.PlatformRegistry = (*PlatformRegistry)(nil)
	_ writeup.ConfigValidator  = (*ConfigValidator)(nil)
)

// Storage is a mock implementation of writeup.Storage.
type Storage struct {
	GetItemFn    func(ctx context.Context, scope writeup.StorageScope, key string) (string, error)
	SetItemFn    func(ctx context.Context, scope writeup.StorageScope, key, value string) error
	RemoveItemFn func(ctx context.Context, scope writeup.StorageScope, key string) error
	KeysFn       func(ctx context.Context, scope writeup.StorageScope) ([]string, error)
}

func (s *Storage) GetItem(ctx context.Context, scope writeup.StorageScope, key string) (string, error) {
	return s.GetItemFn(ctx, scope, key)
}

func (s *Storage) SetItem(ctx context.Context, scope writeup.StorageScope, key, value string) error {
	return s.SetItemFn(ctx, scope, key, value)
}

func (s *Storage) RemoveItem(ctx context.Context, scope writeup.StorageScope, key string) error {
	return s.RemoveItemFn(ctx, scope, key)
}

func (s *Storage) Keys(ctx context.Context, scope writeup.StorageScope) ([]string, error) {
	return s.KeysFn(ctx, scope)
}

// PlatformRegistry is a mock implementation of writeup.PlatformRegistry.
type PlatformRegistry struct {
	ResolveFn func(hostname string) *writeup.Platform
	LookupFn  func(hostname string) (*writeup.Platform, bool)
	ListFn    func() []*writeup.Platform
}

func (r *PlatformRegistry) Resolve(hostname string) *writeup.Platform {
	return r.ResolveFn(hostname)
}

func (r *PlatformRegistry) Lookup(hostname string) (*writeup.Platform, bool) {
	return r.LookupFn(hostname)
}

func (r *PlatformRegistry) List() []*writeup.Platform {
	return r.ListFn()
}

// ConfigValidator is a mock implementation of writeup.ConfigValidator.
type ConfigValidator struct {
	ValidateConfigFn func(data []byte) error
}

func (v *ConfigValidator) ValidateConfig(data []byte) error {
	return v.ValidateConfigFn(data)
}
