// Package gateway implements the AI operation gateway.
package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

// ErrNoProviderConfigured is returned when zero enabled adapters
// support the requested operation. Dispatch fails fast with this
// instead of silently looping over an empty list.
var ErrNoProviderConfigured = errors.New("no provider configured for operation")

// AllProvidersFailedError aggregates the per-adapter failures after
// every adapter in the fallback chain was exhausted. Attempts preserve
// dispatch order for diagnosis.
type AllProvidersFailedError struct {
	Kind     operation.Kind
	Attempts []Attempt
}

func (e *AllProvidersFailedError) Error() string {
	reasons := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		reasons = append(reasons, fmt.Sprintf("%s: %s", a.Adapter, a.Error))
	}
	return fmt.Sprintf("all providers failed for %s (%d attempted): %s",
		e.Kind, len(e.Attempts), strings.Join(reasons, "; "))
}

// IsAllProvidersFailed extracts an *AllProvidersFailedError from an
// error chain.
func IsAllProvidersFailed(err error) (*AllProvidersFailedError, bool) {
	var e *AllProvidersFailedError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
