package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

func enabledNames(r *Registry, kind operation.Kind) []string {
	var out []string
	for _, a := range r.EnabledFor(kind) {
		out = append(out, a.Name())
	}
	return out
}

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "openai"}, 3, true)
	r.Register(&stubAdapter{name: "custom"}, 1, false)
	r.Register(&stubAdapter{name: "gemini"}, 2, true)

	assert.Equal(t, []string{"custom", "gemini", "openai"}, enabledNames(r, operation.GenerateText))
}

func TestRegistryReplaceByName(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "gemini"}, 2, true)
	r.Register(&stubAdapter{name: "gemini", result: operation.Result{Text: "v2"}}, 1, true)

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot[0].Priority)
}

func TestRegistrySetEnabled(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "custom"}, 1, false)
	r.Register(&stubAdapter{name: "gemini"}, 2, true)

	require.True(t, r.SetEnabled("gemini", false))
	assert.Equal(t, []string{"custom"}, enabledNames(r, operation.GenerateText))

	require.True(t, r.SetEnabled("gemini", true))
	assert.Equal(t, []string{"custom", "gemini"}, enabledNames(r, operation.GenerateText))

	assert.False(t, r.SetEnabled("claude", true), "unknown adapter name")
}

func TestRegistryZeroCostMode(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "custom"}, 1, false)
	r.Register(&stubAdapter{name: "gemini"}, 2, true)
	r.Register(&stubAdapter{name: "openai"}, 3, true)

	r.SetZeroCostMode(true)
	assert.True(t, r.ZeroCostMode())
	assert.Equal(t, []string{"custom"}, enabledNames(r, operation.GenerateText))

	// Paid adapters stay registered and visible, just excluded from
	// dispatch.
	assert.Len(t, r.Snapshot(), 3)

	r.SetZeroCostMode(false)
	assert.Equal(t, []string{"custom", "gemini", "openai"}, enabledNames(r, operation.GenerateText))
}

func TestRegistryIsPaid(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "custom"}, 1, false)
	r.Register(&stubAdapter{name: "openai"}, 2, true)

	assert.False(t, r.IsPaid("custom"))
	assert.True(t, r.IsPaid("openai"))
	assert.False(t, r.IsPaid("nonexistent"))
}

// pickyAdapter only supports one kind; used to verify kind filtering.
type pickyAdapter struct {
	stubAdapter
	kind operation.Kind
}

func (p *pickyAdapter) Supports(kind operation.Kind) bool { return kind == p.kind }

func TestRegistryFiltersByKind(t *testing.T) {
	r := NewRegistry()
	r.Register(&pickyAdapter{stubAdapter: stubAdapter{name: "recs-only"}, kind: operation.GenerateRecommendations}, 1, false)
	r.Register(&stubAdapter{name: "gemini"}, 2, true)

	assert.Equal(t, []string{"gemini"}, enabledNames(r, operation.GenerateText))
	assert.Equal(t, []string{"recs-only", "gemini"}, enabledNames(r, operation.GenerateRecommendations))
}
