// Package provider contains the adapters that back the AI gateway.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

const (
	// GeminiName is the registry identifier for this adapter.
	GeminiName = "gemini"

	// DefaultGeminiBaseURL is the default Gemini API endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultGeminiModel is used when configuration does not name one.
	DefaultGeminiModel = "gemini-1.5-flash"

	// DefaultGeminiTimeout is the default HTTP client timeout.
	DefaultGeminiTimeout = 30 * time.Second
)

// GeminiAdapter implements Adapter for the Google Gemini API.
// It renders operations into generateContent requests and translates
// Gemini errors into the gateway failure taxonomy.
type GeminiAdapter struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// GeminiOption is a functional option for configuring GeminiAdapter.
type GeminiOption func(*GeminiAdapter)

// WithGeminiBaseURL sets a custom base URL for the Gemini API.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(g *GeminiAdapter) {
		g.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithGeminiModel sets the model used for all operations.
func WithGeminiModel(model string) GeminiOption {
	return func(g *GeminiAdapter) {
		g.model = model
	}
}

// WithGeminiHTTPClient sets a custom HTTP client.
func WithGeminiHTTPClient(client *http.Client) GeminiOption {
	return func(g *GeminiAdapter) {
		g.httpClient = client
	}
}

// WithGeminiTimeout sets the HTTP client timeout.
func WithGeminiTimeout(timeout time.Duration) GeminiOption {
	return func(g *GeminiAdapter) {
		g.httpClient.Timeout = timeout
	}
}

// NewGeminiAdapter creates a GeminiAdapter with the given API key.
func NewGeminiAdapter(apiKey string, opts ...GeminiOption) *GeminiAdapter {
	g := &GeminiAdapter{
		apiKey:  apiKey,
		baseURL: DefaultGeminiBaseURL,
		model:   DefaultGeminiModel,
		httpClient: &http.Client{
			Timeout: DefaultGeminiTimeout,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Name returns the provider identifier.
func (g *GeminiAdapter) Name() string {
	return GeminiName
}

// Supports reports which operations this adapter can perform. Gemini
// handles every gateway operation.
func (g *GeminiAdapter) Supports(kind operation.Kind) bool {
	_, err := operation.ParseKind(string(kind))
	return err == nil
}

// Invoke renders the operation into a generateContent request,
// executes it, and maps the response back to the uniform Result.
func (g *GeminiAdapter) Invoke(ctx context.Context, op operation.Operation) (operation.Result, error) {
	if g.apiKey == "" {
		return operation.Result{}, Unavailable(GeminiName, errors.New("no API key configured"))
	}

	spec, err := buildPrompt(op)
	if err != nil {
		return operation.Result{}, InvalidInput(GeminiName, err)
	}

	geminiReq := g.buildRequest(spec)

	body, err := json.Marshal(geminiReq)
	if err != nil {
		return operation.Result{}, Unavailable(GeminiName, fmt.Errorf("failed to marshal gemini request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return operation.Result{}, Unavailable(GeminiName, fmt.Errorf("failed to create http request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		// Network errors and client timeouts are both worth a
		// different adapter.
		return operation.Result{}, Transient(GeminiName, fmt.Errorf("failed to execute gemini request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return operation.Result{}, Transient(GeminiName, fmt.Errorf("failed to read gemini response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return operation.Result{}, g.translateHTTPError(resp.StatusCode, respBody)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return operation.Result{}, Transient(GeminiName, fmt.Errorf("failed to unmarshal gemini response: %w", err))
	}

	text := geminiResp.text()
	if text == "" {
		return operation.Result{}, Transient(GeminiName, errors.New("gemini returned no candidates"))
	}

	result := operation.Result{
		Text:  text,
		Model: g.model,
	}
	if geminiResp.UsageMetadata != nil {
		result.TokensUsed = geminiResp.UsageMetadata.TotalTokenCount
	}

	if spec.WantJSON {
		data, err := parseStructured(text)
		if err != nil {
			return operation.Result{}, Transient(GeminiName, err)
		}
		result.Data = data
	}

	return result, nil
}

// buildRequest maps a promptSpec to the Gemini wire format.
func (g *GeminiAdapter) buildRequest(spec promptSpec) geminiRequest {
	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: spec.User}}},
		},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens: spec.MaxTokens,
		},
	}

	if spec.System != "" {
		req.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: spec.System}},
		}
	}

	if spec.WantJSON {
		req.GenerationConfig.ResponseMIMEType = "application/json"
	}

	return req
}

// translateHTTPError maps a non-200 Gemini status to a failure kind.
// 400/404 mean the request itself is bad; 401/403 mean the credential
// is bad; everything else (429, 5xx) is worth another adapter.
func (g *GeminiAdapter) translateHTTPError(status int, body []byte) *Failure {
	detail := string(body)
	var geminiErr geminiErrorResponse
	if err := json.Unmarshal(body, &geminiErr); err == nil && geminiErr.Error.Message != "" {
		detail = geminiErr.Error.Message
	}

	err := fmt.Errorf("gemini API error [%d]: %s", status, detail)

	switch {
	case status == http.StatusBadRequest || status == http.StatusNotFound:
		return InvalidInput(GeminiName, err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Unavailable(GeminiName, err)
	default:
		return Transient(GeminiName, err)
	}
}

// ============================================================================
// Gemini API Types
// ============================================================================

// geminiRequest represents a Gemini generateContent request.
type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// geminiContent represents a content block in Gemini format.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiPart represents a part of a content block.
type geminiPart struct {
	Text string `json:"text,omitempty"`
}

// geminiGenerationConfig contains generation parameters.
type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
}

// geminiResponse represents a Gemini generateContent response.
type geminiResponse struct {
	Candidates    []geminiCandidate    `json:"candidates"`
	UsageMetadata *geminiUsageMetadata `json:"usageMetadata,omitempty"`
}

// geminiCandidate represents a single generated candidate.
type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// geminiUsageMetadata contains token usage information.
type geminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// geminiErrorResponse represents an error response from the Gemini API.
type geminiErrorResponse struct {
	Error geminiErrorDetail `json:"error"`
}

// geminiErrorDetail contains error details.
type geminiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// text returns the first candidate's text, or "".
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}
