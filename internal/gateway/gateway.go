// Package gateway implements the AI operation gateway.
package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/cache"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/provider"
)

// DefaultAdapterTimeout bounds a single adapter invocation. Total
// dispatch latency is therefore bounded by adapters-tried × timeout.
const DefaultAdapterTimeout = 30 * time.Second

// Outcome classifies one dispatch attempt.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailure  Outcome = "failure"
	OutcomeCacheHit Outcome = "cache_hit"
)

// Attempt is the ephemeral record of one adapter invocation within a
// dispatch. It is returned for diagnostics and logged, never persisted.
type Attempt struct {
	Adapter     string               `json:"adapter"`
	Outcome     Outcome              `json:"outcome"`
	FailureKind provider.FailureKind `json:"failure_kind,omitempty"`
	LatencyMS   int64                `json:"latency_ms"`
	Error       string               `json:"error,omitempty"`
}

// Result is the outcome of one successful dispatch.
type Result struct {
	Value    operation.Result `json:"value"`
	ServedBy string           `json:"served_by"`
	CacheHit bool             `json:"cache_hit,omitempty"`
	Attempts []Attempt        `json:"attempts"`
}

// Gateway dispatches operations across the registered adapters with
// fallback, caching, and failure simulation.
type Gateway struct {
	registry *Registry
	cache    *cache.ResultCache
	savings  *SavingsTracker
	logger   *slog.Logger
	timeout  time.Duration

	// cacheable overrides the per-kind default cacheability.
	cacheable map[operation.Kind]bool
}

// Option is a functional option for configuring Gateway.
type Option func(*Gateway)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithAdapterTimeout sets the per-adapter invocation timeout.
func WithAdapterTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// WithCache sets the result cache. Without one, every operation is
// dispatched fresh.
func WithCache(c *cache.ResultCache) Option {
	return func(g *Gateway) {
		g.cache = c
	}
}

// WithCacheableKinds overrides which operation kinds consult the
// cache. Kinds absent from the map keep their default.
func WithCacheableKinds(kinds map[operation.Kind]bool) Option {
	return func(g *Gateway) {
		for k, v := range kinds {
			g.cacheable[k] = v
		}
	}
}

// WithSavingsTracker sets the cost-savings tracker.
func WithSavingsTracker(t *SavingsTracker) Option {
	return func(g *Gateway) {
		g.savings = t
	}
}

// New creates a Gateway over the given registry.
func New(registry *Registry, opts ...Option) *Gateway {
	g := &Gateway{
		registry:  registry,
		logger:    slog.Default(),
		timeout:   DefaultAdapterTimeout,
		cacheable: make(map[operation.Kind]bool),
	}

	for _, k := range operation.Kinds {
		g.cacheable[k] = operation.CacheableByDefault(k)
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Registry returns the provider registry for admin reconfiguration.
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// Cache returns the result cache, or nil if caching is off.
func (g *Gateway) Cache() *cache.ResultCache {
	return g.cache
}

// Savings returns the cost-savings tracker, or nil.
func (g *Gateway) Savings() *SavingsTracker {
	return g.savings
}

// executeOptions collects the per-call knobs of Execute.
type executeOptions struct {
	policy   SimulationPolicy
	cacheKey string
}

// ExecuteOption is a per-call option for Execute.
type ExecuteOption func(*executeOptions)

// WithSimulation applies a failure-simulation policy to this dispatch
// only. Production callers pass no policy.
func WithSimulation(policy SimulationPolicy) ExecuteOption {
	return func(o *executeOptions) {
		o.policy = policy
	}
}

// WithCacheKey overrides the computed fingerprint for this dispatch.
func WithCacheKey(key string) ExecuteOption {
	return func(o *executeOptions) {
		o.cacheKey = key
	}
}

// Execute dispatches one operation. Adapters are tried strictly in
// registry priority order; the first success wins. Unavailable and
// Transient failures fall through to the next adapter, InvalidInput
// stops immediately, and a timed-out invocation counts as Transient.
//
// On failure the returned Result is non-nil and still carries the
// attempt log, so callers can surface per-adapter diagnostics.
func (g *Gateway) Execute(ctx context.Context, op operation.Operation, opts ...ExecuteOption) (*Result, error) {
	var o executeOptions
	for _, opt := range opts {
		opt(&o)
	}

	requestID := uuid.NewString()
	logger := g.logger.With(
		slog.String("request_id", requestID),
		slog.String("operation", string(op.Kind)),
	)

	// 1. Cache lookup for cacheable kinds.
	fingerprint := o.cacheKey
	if g.isCacheable(op.Kind) && g.cache != nil {
		if fingerprint == "" {
			fp, err := operation.Fingerprint(op)
			if err != nil {
				logger.Warn("fingerprint failed, bypassing cache", slog.String("error", err.Error()))
			} else {
				fingerprint = fp
			}
		}

		if fingerprint != "" {
			if value, ok := g.cache.Get(fingerprint); ok {
				logger.Info("cache hit", slog.String("fingerprint", shortFingerprint(fingerprint)))
				if g.savings != nil {
					g.savings.RecordCacheHit(value)
				}
				return &Result{
					Value:    value,
					ServedBy: "cache",
					CacheHit: true,
					Attempts: []Attempt{{Adapter: "cache", Outcome: OutcomeCacheHit}},
				}, nil
			}
		}
	}

	// 2. Ordered adapter list, post-simulation.
	adapters := applyPolicy(g.registry.EnabledFor(op.Kind), o.policy)
	if len(adapters) == 0 {
		logger.Warn("no provider configured")
		return &Result{Attempts: []Attempt{}}, ErrNoProviderConfigured
	}

	// 3. Fallback loop. Each adapter is tried at most once.
	attempts := make([]Attempt, 0, len(adapters))
	for _, a := range adapters {
		attempt, result, err := g.invokeOne(ctx, a, op)
		attempts = append(attempts, attempt)

		if err == nil {
			logger.Info("dispatch served",
				slog.String("served_by", a.Name()),
				slog.Int("attempts", len(attempts)),
				slog.Int64("latency_ms", attempt.LatencyMS),
			)

			if fingerprint != "" && g.isCacheable(op.Kind) && g.cache != nil {
				g.cache.Put(fingerprint, result)
			}
			if g.savings != nil && !g.registry.IsPaid(a.Name()) {
				g.savings.RecordFreeServe(result)
			}

			return &Result{
				Value:    result,
				ServedBy: a.Name(),
				Attempts: attempts,
			}, nil
		}

		failure, ok := provider.AsFailure(err)
		if ok && !failure.TriggersFallback() {
			// Same input would fail everywhere; surface to the
			// caller without trying further adapters.
			logger.Warn("invalid input, not falling back",
				slog.String("adapter", a.Name()),
				slog.String("error", failure.Err.Error()),
			)
			return &Result{Attempts: attempts}, failure
		}

		logger.Warn("adapter failed, trying next",
			slog.String("adapter", a.Name()),
			slog.String("failure_kind", string(attempt.FailureKind)),
			slog.String("error", attempt.Error),
		)
	}

	// 4. Chain exhausted.
	aggErr := &AllProvidersFailedError{Kind: op.Kind, Attempts: attempts}
	logger.Error("all providers failed", slog.Int("attempts", len(attempts)))
	return &Result{Attempts: attempts}, aggErr
}

// invokeOne runs a single adapter under the per-adapter timeout and
// records the attempt.
func (g *Gateway) invokeOne(ctx context.Context, a provider.Adapter, op operation.Operation) (Attempt, operation.Result, error) {
	invokeCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	result, err := a.Invoke(invokeCtx, op)
	latency := time.Since(start)

	attempt := Attempt{
		Adapter:   a.Name(),
		LatencyMS: latency.Milliseconds(),
	}

	if err == nil {
		attempt.Outcome = OutcomeSuccess
		return attempt, result, nil
	}

	// A deadline hit is a Transient failure, never a crash.
	failure, ok := provider.AsFailure(err)
	if !ok {
		failure = provider.Transient(a.Name(), err)
	}
	if invokeCtx.Err() == context.DeadlineExceeded && failure.Kind != provider.FailureInvalidInput {
		failure = provider.Transient(a.Name(), invokeCtx.Err())
	}

	attempt.Outcome = OutcomeFailure
	attempt.FailureKind = failure.Kind
	attempt.Error = failure.Err.Error()

	return attempt, operation.Result{}, failure
}

// isCacheable reports whether results for the kind may be cached.
func (g *Gateway) isCacheable(kind operation.Kind) bool {
	return g.cacheable[kind]
}

// shortFingerprint truncates a fingerprint for log output.
func shortFingerprint(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12] + "..."
}
