// Package gateway implements the AI operation gateway.
package gateway

import (
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

// Status reports, for each registered adapter, whether a dispatch of
// the given kind would currently attempt it. The answer is derived
// from registry configuration only: no adapter is probed, because a
// live probe would have the cost and latency of a real call. Used by
// the dashboard's "AI system health" panel.
func (g *Gateway) Status(kind operation.Kind) map[string]bool {
	attempted := make(map[string]bool)
	for _, a := range g.registry.EnabledFor(kind) {
		attempted[a.Name()] = true
	}

	status := make(map[string]bool)
	for _, info := range g.registry.Snapshot() {
		status[info.Name] = attempted[info.Name]
	}
	return status
}
