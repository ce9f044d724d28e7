// Package gateway implements the AI operation gateway.
package gateway

import (
	"context"
	"errors"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/provider"
)

// ErrSimulatedFailure is the underlying error of every synthetic
// failure produced by the simulator.
var ErrSimulatedFailure = errors.New("simulated provider failure")

// SimulationPolicy overrides real adapter health for the duration of a
// single dispatch call. It is supplied per call by test and diagnostic
// entry points and never stored; production dispatch passes the zero
// value.
type SimulationPolicy struct {
	// ForceFailAdapters names adapters that must report a synthetic
	// Transient failure instead of being invoked.
	ForceFailAdapters []string `json:"force_fail_adapters,omitempty"`

	// ForceFailAll forces every adapter to fail.
	ForceFailAll bool `json:"force_fail_all,omitempty"`
}

// IsZero reports whether the policy simulates nothing.
func (p SimulationPolicy) IsZero() bool {
	return !p.ForceFailAll && len(p.ForceFailAdapters) == 0
}

// forcesFailure reports whether the named adapter must fail.
func (p SimulationPolicy) forcesFailure(name string) bool {
	if p.ForceFailAll {
		return true
	}
	for _, n := range p.ForceFailAdapters {
		if n == name {
			return true
		}
	}
	return false
}

// simulatedAdapter decorates a real adapter with a forced failure. It
// satisfies provider.Adapter, so the dispatcher cannot tell a
// simulated attempt from a real one.
type simulatedAdapter struct {
	provider.Adapter
}

// Invoke returns a synthetic Transient failure without touching the
// real adapter.
func (s simulatedAdapter) Invoke(_ context.Context, _ operation.Operation) (operation.Result, error) {
	return operation.Result{}, provider.Transient(s.Name(), ErrSimulatedFailure)
}

// applyPolicy wraps the adapters named by the policy. The returned
// slice preserves registry order.
func applyPolicy(adapters []provider.Adapter, policy SimulationPolicy) []provider.Adapter {
	if policy.IsZero() {
		return adapters
	}

	out := make([]provider.Adapter, len(adapters))
	for i, a := range adapters {
		if policy.forcesFailure(a.Name()) {
			out[i] = simulatedAdapter{a}
		} else {
			out[i] = a
		}
	}
	return out
}
