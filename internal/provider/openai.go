// Package provider contains the adapters that back the AI gateway.
package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

const (
	// OpenAIName is the registry identifier for this adapter.
	OpenAIName = "openai"

	// DefaultOpenAIModel is used when configuration does not name one.
	DefaultOpenAIModel = openai.GPT4oMini

	// DefaultOpenAITimeout is the default request timeout.
	DefaultOpenAITimeout = 30 * time.Second
)

// OpenAIAdapter implements Adapter on top of the go-openai client.
// All SDK types stay inside this file; the gateway sees only the
// common Result/Failure contract.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
	hasKey bool
}

// OpenAIOption is a functional option for configuring OpenAIAdapter.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	baseURL string
	model   string
	timeout time.Duration
}

// WithOpenAIBaseURL sets a custom base URL (OpenAI-compatible servers).
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) {
		c.baseURL = url
	}
}

// WithOpenAIModel sets the model used for all operations.
func WithOpenAIModel(model string) OpenAIOption {
	return func(c *openAIConfig) {
		c.model = model
	}
}

// WithOpenAITimeout sets the request timeout.
func WithOpenAITimeout(timeout time.Duration) OpenAIOption {
	return func(c *openAIConfig) {
		c.timeout = timeout
	}
}

// NewOpenAIAdapter creates an OpenAIAdapter with the given API key.
func NewOpenAIAdapter(apiKey string, opts ...OpenAIOption) *OpenAIAdapter {
	cfg := openAIConfig{
		model:   DefaultOpenAIModel,
		timeout: DefaultOpenAITimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientCfg.BaseURL = cfg.baseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.timeout}

	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.model,
		hasKey: apiKey != "",
	}
}

// Name returns the provider identifier.
func (o *OpenAIAdapter) Name() string {
	return OpenAIName
}

// Supports reports which operations this adapter can perform. OpenAI
// handles every gateway operation.
func (o *OpenAIAdapter) Supports(kind operation.Kind) bool {
	_, err := operation.ParseKind(string(kind))
	return err == nil
}

// Invoke renders the operation into a chat completion request and maps
// the response back to the uniform Result.
func (o *OpenAIAdapter) Invoke(ctx context.Context, op operation.Operation) (operation.Result, error) {
	if !o.hasKey {
		return operation.Result{}, Unavailable(OpenAIName, errors.New("no API key configured"))
	}

	spec, err := buildPrompt(op)
	if err != nil {
		return operation.Result{}, InvalidInput(OpenAIName, err)
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: spec.System},
			{Role: openai.ChatMessageRoleUser, Content: spec.User},
		},
		MaxTokens: spec.MaxTokens,
	}
	if spec.WantJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return operation.Result{}, o.translateError(err)
	}

	if len(resp.Choices) == 0 {
		return operation.Result{}, Transient(OpenAIName, errors.New("openai returned no choices"))
	}

	result := operation.Result{
		Text:       resp.Choices[0].Message.Content,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}

	if spec.WantJSON {
		data, err := parseStructured(result.Text)
		if err != nil {
			return operation.Result{}, Transient(OpenAIName, err)
		}
		result.Data = data
	}

	return result, nil
}

// translateError maps go-openai errors to the failure taxonomy.
// 400/404 mean the request is bad, 401/403 mean the credential is bad,
// 429 and 5xx (and plain network errors) are worth another adapter.
func (o *OpenAIAdapter) translateError(err error) *Failure {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusBadRequest || apiErr.HTTPStatusCode == http.StatusNotFound:
			return InvalidInput(OpenAIName, err)
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			return Unavailable(OpenAIName, err)
		default:
			return Transient(OpenAIName, err)
		}
	}

	return Transient(OpenAIName, err)
}
