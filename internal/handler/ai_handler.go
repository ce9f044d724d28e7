// Package handler provides the HTTP surface of the AI gateway.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/gateway"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/provider"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/ui"
)

// AIHandler exposes the gateway's execute and diagnostic contract over
// HTTP. The platform's dashboards and document pipeline are its
// callers.
type AIHandler struct {
	gateway *gateway.Gateway
	logger  *slog.Logger
}

// AIHandlerOption is a functional option for configuring AIHandler.
type AIHandlerOption func(*AIHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) AIHandlerOption {
	return func(h *AIHandler) {
		h.logger = logger
	}
}

// NewAIHandler creates an AIHandler over the gateway.
func NewAIHandler(gw *gateway.Gateway, opts ...AIHandlerOption) *AIHandler {
	h := &AIHandler{
		gateway: gw,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// executeRequest is the wire shape of POST /api/ai/execute.
type executeRequest struct {
	Operation  string                    `json:"operation" binding:"required"`
	Params     json.RawMessage           `json:"params"`
	Simulation *gateway.SimulationPolicy `json:"simulation,omitempty"`
	CacheKey   string                    `json:"cache_key,omitempty"`
}

// HandleExecute handles POST /api/ai/execute.
// It decodes the operation, dispatches it through the gateway, and
// returns the dispatcher's result verbatim, including per-adapter
// attempt diagnostics when failures occurred.
func (h *AIHandler) HandleExecute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	params, err := operation.ParseParams(req.Operation, req.Params)
	if err != nil {
		status := http.StatusBadRequest
		kind := "invalid_input"
		if errors.Is(err, operation.ErrUnknownKind) {
			kind = "unknown_operation"
		}
		h.sendError(c, status, kind, err.Error(), nil)
		return
	}

	op := operation.New(params)

	var execOpts []gateway.ExecuteOption
	if req.Simulation != nil {
		execOpts = append(execOpts, gateway.WithSimulation(*req.Simulation))
	}
	if req.CacheKey != "" {
		execOpts = append(execOpts, gateway.WithCacheKey(req.CacheKey))
	}

	result, err := h.gateway.Execute(c.Request.Context(), op, execOpts...)
	if err != nil {
		h.sendDispatchError(c, op.Kind, result, err)
		return
	}

	if result.CacheHit {
		ui.PrintCacheHit(string(op.Kind))
	} else if len(result.Attempts) > 1 {
		ui.PrintFallback(result.Attempts[0].Adapter, result.ServedBy)
	}

	c.Set("served_by", result.ServedBy)
	c.Set("attempts", len(result.Attempts))

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"value":     result.Value,
		"served_by": result.ServedBy,
		"cache_hit": result.CacheHit,
		"attempts":  result.Attempts,
	})
}

// sendDispatchError maps a gateway error to the failure wire shape.
func (h *AIHandler) sendDispatchError(c *gin.Context, kind operation.Kind, result *gateway.Result, err error) {
	var attempts []gateway.Attempt
	if result != nil {
		attempts = result.Attempts
	}

	if errors.Is(err, gateway.ErrNoProviderConfigured) {
		h.sendError(c, http.StatusServiceUnavailable, "no_provider_configured", err.Error(), attempts)
		return
	}

	if agg, ok := gateway.IsAllProvidersFailed(err); ok {
		ui.PrintAllFailed(string(kind), len(agg.Attempts))
		h.sendError(c, http.StatusBadGateway, "all_providers_failed", err.Error(), agg.Attempts)
		return
	}

	if failure, ok := provider.AsFailure(err); ok {
		switch failure.Kind {
		case provider.FailureInvalidInput:
			h.sendError(c, http.StatusBadRequest, "invalid_input", failure.Err.Error(), attempts)
		case provider.FailureUnavailable:
			h.sendError(c, http.StatusServiceUnavailable, "unavailable", failure.Err.Error(), attempts)
		default:
			h.sendError(c, http.StatusBadGateway, "transient", failure.Err.Error(), attempts)
		}
		return
	}

	h.logger.Error("unclassified dispatch error", slog.String("error", err.Error()))
	h.sendError(c, http.StatusInternalServerError, "internal_error", "unexpected dispatch failure", attempts)
}

// sendError writes the uniform failure payload. Attempts may be nil.
func (h *AIHandler) sendError(c *gin.Context, status int, errorKind, details string, attempts []gateway.Attempt) {
	body := gin.H{
		"success":    false,
		"error_kind": errorKind,
		"details":    details,
	}
	if attempts != nil {
		body["attempts"] = attempts
	}
	c.JSON(status, body)
}

// HandleStatus handles GET /api/ai/status/:operation.
// It reports which adapters would currently be attempted for the
// operation, from registry configuration alone.
func (h *AIHandler) HandleStatus(c *gin.Context) {
	kind, err := operation.ParseKind(c.Param("operation"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "unknown_operation", err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operation":      kind,
		"providers":      h.gateway.Status(kind),
		"zero_cost_mode": h.gateway.Registry().ZeroCostMode(),
	})
}

// toggleRequest is the wire shape of the admin toggle endpoints.
type toggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// HandleSetProviderEnabled handles POST /api/ai/providers/:name/enabled.
// Disabling an adapter here removes it from status output and from the
// fallback order on the next dispatch, without a process restart.
func (h *AIHandler) HandleSetProviderEnabled(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	name := c.Param("name")
	if !h.gateway.Registry().SetEnabled(name, *req.Enabled) {
		h.sendError(c, http.StatusNotFound, "unknown_provider", "no provider named "+name, nil)
		return
	}

	ui.PrintProviderToggle(name, *req.Enabled)
	h.logger.Info("provider toggled",
		slog.String("provider", name),
		slog.Bool("enabled", *req.Enabled),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"providers": h.gateway.Registry().Snapshot(),
	})
}

// HandleSetZeroCostMode handles POST /api/ai/zero-cost.
func (h *AIHandler) HandleSetZeroCostMode(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	h.gateway.Registry().SetZeroCostMode(*req.Enabled)
	h.logger.Info("zero-cost mode toggled", slog.Bool("enabled", *req.Enabled))

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"zero_cost_mode": *req.Enabled,
	})
}

// HandleFlushCache handles POST /api/ai/cache/flush.
func (h *AIHandler) HandleFlushCache(c *gin.Context) {
	flushed := 0
	if cache := h.gateway.Cache(); cache != nil {
		flushed = cache.Flush()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"flushed": flushed,
	})
}

// HandleHealth handles GET /health.
// Returns gateway health derived from registry configuration plus
// cache and savings statistics. No provider is probed.
func (h *AIHandler) HandleHealth(c *gin.Context) {
	providers := h.gateway.Registry().Snapshot()

	enabled := 0
	for _, p := range providers {
		if p.Enabled {
			enabled++
		}
	}

	status := "healthy"
	if enabled == 0 {
		status = "degraded"
	}

	body := gin.H{
		"status":         status,
		"providers":      providers,
		"zero_cost_mode": h.gateway.Registry().ZeroCostMode(),
	}

	if cache := h.gateway.Cache(); cache != nil {
		hits, misses, size := cache.Stats()
		body["cache"] = gin.H{"hits": hits, "misses": misses, "size": size}
	}

	if savings := h.gateway.Savings(); savings != nil {
		freeServes, cacheHits := savings.Counts()
		body["savings"] = gin.H{
			"total_saved_usd": savings.TotalSaved(),
			"free_serves":     freeServes,
			"cache_hits":      cacheHits,
		}
	}

	c.JSON(http.StatusOK, body)
}
