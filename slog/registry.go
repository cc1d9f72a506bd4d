package slog

import (
	"log/slog"

	"github.com/fwojciec/writeup"
)

// Ensure LoggingRegistry implements writeup.PlatformRegistry.
var _ writeup.PlatformRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a PlatformRegistry with logging of platform
// resolution.
type LoggingRegistry struct {
	next   writeup.PlatformRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next writeup.PlatformRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Resolve delegates to the wrapped registry and logs the chosen platform.
func (r *LoggingRegistry) Resolve(hostname string) *writeup.Platform {
	_, matched := r.next.Lookup(hostname)
	p := r.next.Resolve(hostname)
	name := "(none)"
	if p != nil {
		name = p.Name
	}
	r.logger.Info("platform resolution",
		"host", hostname,
		"platform", name,
		"fallback", !matched,
	)
	return p
}

// Lookup delegates to the wrapped registry.
func (r *LoggingRegistry) Lookup(hostname string) (*writeup.Platform, bool) {
	return r.next.Lookup(hostname)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []*writeup.Platform {
	return r.next.List()
}
