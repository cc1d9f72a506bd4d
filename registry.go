package writeup

import "strings"

var _ PlatformRegistry = (*Registry)(nil)

// Registry resolves platforms by hostname substring. Platforms are matched
// in registration order and the first match wins, so more specific keys
// must be registered before keys they contain.
//
// Registry is not safe for concurrent Register calls; build it once at
// startup and treat it as read-only afterwards.
type Registry struct {
	fallback *Platform
	ordered  []*Platform
	byKey    map[string]*Platform
}

// NewRegistry creates a Registry that resolves unmatched hostnames to
// fallback. The fallback does not need to be registered, but usually is.
// A nil fallback is replaced by DefaultPlatform.
func NewRegistry(fallback *Platform) *Registry {
	if fallback == nil {
		fallback = DefaultPlatform()
	}
	return &Registry{
		fallback: fallback,
		byKey:    make(map[string]*Platform),
	}
}

// Register appends a platform to the resolution order.
// Returns EINVALID for a nil platform or empty key and ECONFLICT if the
// key is already registered.
func (r *Registry) Register(p *Platform) error {
	if p == nil {
		return Errorf(EINVALID, "platform required")
	}
	if p.Key == "" {
		return Errorf(EINVALID, "platform key required")
	}
	if _, exists := r.byKey[p.Key]; exists {
		return Errorf(ECONFLICT, "platform %q already registered", p.Key)
	}
	r.byKey[p.Key] = p
	r.ordered = append(r.ordered, p)
	return nil
}

// Get returns the platform registered under key, or nil.
func (r *Registry) Get(key string) *Platform {
	return r.byKey[key]
}

// Resolve returns the first platform whose key occurs in hostname, or the
// fallback platform.
func (r *Registry) Resolve(hostname string) *Platform {
	if p, ok := r.Lookup(hostname); ok {
		return p
	}
	return r.fallback
}

// Lookup returns the first platform whose key occurs in hostname.
func (r *Registry) Lookup(hostname string) (*Platform, bool) {
	for _, p := range r.ordered {
		if strings.Contains(hostname, p.Key) {
			return p, true
		}
	}
	return nil, false
}

// Fallback returns the platform used for unmatched hostnames.
func (r *Registry) Fallback() *Platform {
	return r.fallback
}

// List returns registered platforms in resolution order.
func (r *Registry) List() []*Platform {
	platforms := make([]*Platform, len(r.ordered))
	copy(platforms, r.ordered)
	return platforms
}
