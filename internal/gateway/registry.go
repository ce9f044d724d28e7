// Package gateway implements the AI operation gateway: the provider
// registry, the failure simulator, the dispatch loop with fallback,
// and the status reporter.
package gateway

import (
	"sort"
	"sync"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/provider"
)

// Registry holds the priority-ordered provider adapters and their
// enable/disable state. Reads vastly outnumber writes: dispatch reads
// the ordered list per request, writes happen only on admin
// reconfiguration, so an RWMutex protects the slice.
type Registry struct {
	mu       sync.RWMutex
	entries  []registryEntry
	zeroCost bool
}

type registryEntry struct {
	adapter  provider.Adapter
	priority int
	enabled  bool
	paid     bool
}

// AdapterInfo is a read-only snapshot of one registered adapter.
type AdapterInfo struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Enabled  bool   `json:"enabled"`
	Paid     bool   `json:"paid"`
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an adapter with the given priority. Adapters are tried
// in ascending priority order. Paid adapters are excluded entirely
// when zero-cost mode is on. Registering a name twice replaces the
// earlier entry.
func (r *Registry) Register(a provider.Adapter, priority int, paid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].adapter.Name() == a.Name() {
			r.entries[i] = registryEntry{adapter: a, priority: priority, enabled: true, paid: paid}
			r.sortLocked()
			return
		}
	}

	r.entries = append(r.entries, registryEntry{adapter: a, priority: priority, enabled: true, paid: paid})
	r.sortLocked()
}

// sortLocked keeps entries in ascending priority order. Stable so that
// equal priorities keep registration order.
func (r *Registry) sortLocked() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority < r.entries[j].priority
	})
}

// SetEnabled toggles one adapter at runtime without a restart.
// Returns false if no adapter has that name.
func (r *Registry) SetEnabled(name string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].adapter.Name() == name {
			r.entries[i].enabled = enabled
			return true
		}
	}
	return false
}

// SetZeroCostMode toggles zero-cost mode. While on, every paid adapter
// is excluded from the ordered list, leaving only free adapters
// servable. Excluding them here (rather than skipping at invoke time)
// keeps cost control auditable from configuration alone.
func (r *Registry) SetZeroCostMode(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zeroCost = on
}

// ZeroCostMode reports whether zero-cost mode is on.
func (r *Registry) ZeroCostMode() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.zeroCost
}

// IsPaid reports whether the named adapter incurs per-call cost.
func (r *Registry) IsPaid(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.adapter.Name() == name {
			return e.paid
		}
	}
	return false
}

// EnabledFor returns the ordered list of adapters that would be tried
// for the given operation kind: enabled, supporting the kind, and not
// cost-excluded.
func (r *Registry) EnabledFor(kind operation.Kind) []provider.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []provider.Adapter
	for _, e := range r.entries {
		if !e.enabled {
			continue
		}
		if r.zeroCost && e.paid {
			continue
		}
		if !e.adapter.Supports(kind) {
			continue
		}
		out = append(out, e.adapter)
	}
	return out
}

// Snapshot returns the registered adapters in priority order.
func (r *Registry) Snapshot() []AdapterInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]AdapterInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, AdapterInfo{
			Name:     e.adapter.Name(),
			Priority: e.priority,
			Enabled:  e.enabled,
			Paid:     e.paid,
		})
	}
	return out
}
