package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

func TestStatusReflectsConfiguration(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubAdapter{name: "custom"}, 1, false)
	registry.Register(&stubAdapter{name: "gemini"}, 2, true)
	registry.Register(&stubAdapter{name: "openai"}, 3, true)

	gw := New(registry, WithLogger(discardLogger()))

	assert.Equal(t, map[string]bool{
		"custom": true,
		"gemini": true,
		"openai": true,
	}, gw.Status(operation.GenerateText))

	registry.SetEnabled("gemini", false)
	assert.Equal(t, map[string]bool{
		"custom": true,
		"gemini": false,
		"openai": true,
	}, gw.Status(operation.GenerateText))
}

func TestStatusZeroCostMode(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubAdapter{name: "custom"}, 1, false)
	registry.Register(&stubAdapter{name: "openai"}, 2, true)
	registry.SetZeroCostMode(true)

	gw := New(registry, WithLogger(discardLogger()))

	// Paid adapters are reported, but as not-attempted.
	assert.Equal(t, map[string]bool{
		"custom": true,
		"openai": false,
	}, gw.Status(operation.GenerateRecommendations))
}

func TestStatusNeverInvokesAdapters(t *testing.T) {
	a := &stubAdapter{name: "custom"}
	registry := NewRegistry()
	registry.Register(a, 1, false)

	gw := New(registry, WithLogger(discardLogger()))
	gw.Status(operation.GenerateText)

	assert.Zero(t, a.calls, "status must be derived from configuration alone")
}
