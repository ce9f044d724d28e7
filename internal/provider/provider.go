// Package provider contains the adapters that back the AI gateway.
// It uses the Adapter pattern to abstract provider-specific APIs behind
// a common operation contract: the gateway only ever sees Adapter and
// Failure, never an SDK type.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

// Adapter defines the interface for AI provider adapters.
// All provider implementations must satisfy this interface.
type Adapter interface {
	// Name returns the provider's identifier string.
	Name() string

	// Supports reports whether this adapter can perform the given
	// operation kind.
	Supports(kind operation.Kind) bool

	// Invoke performs one operation. Any error returned must be a
	// *Failure; the adapter is responsible for applying its own
	// request timeout and translating foreign errors into one of
	// the failure kinds.
	Invoke(ctx context.Context, op operation.Operation) (operation.Result, error)
}

// FailureKind classifies why an adapter could not serve an operation.
// The distinction drives fallback: only Unavailable and Transient
// failures let dispatch continue to the next adapter.
type FailureKind string

const (
	// FailureUnavailable means the adapter is disabled or
	// misconfigured (e.g. missing credential). Triggers fallback.
	FailureUnavailable FailureKind = "unavailable"

	// FailureTransient means a network error, timeout, or rate
	// limit. Worth retrying on a different adapter.
	FailureTransient FailureKind = "transient"

	// FailureInvalidInput means the parameters were rejected. The
	// same input would fail on every adapter, so dispatch stops
	// immediately instead of falling through.
	FailureInvalidInput FailureKind = "invalid_input"
)

// Failure is the typed error adapters return. It wraps the underlying
// provider error so callers can still inspect it with errors.As while
// the gateway only branches on Kind.
type Failure struct {
	Kind    FailureKind
	Adapter string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", f.Adapter, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// TriggersFallback reports whether dispatch should continue to the
// next adapter after this failure.
func (f *Failure) TriggersFallback() bool {
	return f.Kind != FailureInvalidInput
}

// Unavailable builds an Unavailable failure for the named adapter.
func Unavailable(adapter string, err error) *Failure {
	return &Failure{Kind: FailureUnavailable, Adapter: adapter, Err: err}
}

// Transient builds a Transient failure for the named adapter.
func Transient(adapter string, err error) *Failure {
	return &Failure{Kind: FailureTransient, Adapter: adapter, Err: err}
}

// InvalidInput builds an InvalidInput failure for the named adapter.
func InvalidInput(adapter string, err error) *Failure {
	return &Failure{Kind: FailureInvalidInput, Adapter: adapter, Err: err}
}

// AsFailure extracts a *Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
