// Package gateway implements the AI operation gateway.
package gateway

import (
	"strings"
	"sync"
	"unicode"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

// Paid-provider pricing per 1 million tokens (USD), used to estimate
// what a request would have cost had a paid adapter served it.
const (
	// OutputPricePerMillion is the cost per million output tokens.
	OutputPricePerMillion = 1.50

	// TokensPerWord is the approximation ratio (1 word ≈ 1.3 tokens).
	TokensPerWord = 1.3
)

// SavingsTracker accumulates an estimate of money saved whenever the
// free local adapter or the result cache serves a request instead of
// a paid provider.
type SavingsTracker struct {
	mu         sync.RWMutex
	totalSaved float64
	freeServes int64
	cacheHits  int64
}

// NewSavingsTracker creates a zeroed tracker.
func NewSavingsTracker() *SavingsTracker {
	return &SavingsTracker{}
}

// RecordFreeServe credits the savings from a request served by a free
// adapter and returns the amount credited.
func (t *SavingsTracker) RecordFreeServe(result operation.Result) float64 {
	saved := estimateCost(result)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.freeServes++
	t.totalSaved += saved
	return saved
}

// RecordCacheHit credits the savings from a request served from cache
// and returns the amount credited.
func (t *SavingsTracker) RecordCacheHit(result operation.Result) float64 {
	saved := estimateCost(result)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.cacheHits++
	t.totalSaved += saved
	return saved
}

// TotalSaved returns the accumulated savings estimate.
func (t *SavingsTracker) TotalSaved() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalSaved
}

// Counts returns how many requests were served free and from cache.
func (t *SavingsTracker) Counts() (freeServes, cacheHits int64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.freeServes, t.cacheHits
}

// Reset zeroes the tracker. Useful for tests.
func (t *SavingsTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalSaved = 0
	t.freeServes = 0
	t.cacheHits = 0
}

// estimateCost prices a result at paid-provider output rates. Uses the
// provider-reported token count when present, otherwise estimates from
// the text.
func estimateCost(result operation.Result) float64 {
	tokens := result.TokensUsed
	if tokens == 0 {
		tokens = EstimateTokens(result.Text)
	}
	return float64(tokens) / 1_000_000 * OutputPricePerMillion
}

// EstimateTokens estimates the number of tokens in a text string.
// Uses a lightweight approximation: 1 word ≈ 1.3 tokens. This avoids
// an external tokenizer while staying close enough for savings
// estimates.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return int(float64(len(words)) * TokensPerWord)
}
