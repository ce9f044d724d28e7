package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

func geminiTextResponse(text string) geminiResponse {
	return geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
		UsageMetadata: &geminiUsageMetadata{TotalTokenCount: 42},
	}
}

func TestGeminiAdapterNoKey(t *testing.T) {
	a := NewGeminiAdapter("")

	_, err := a.Invoke(context.Background(), operation.New(operation.GenerateTextParams{Prompt: "hi"}))
	failure, ok := AsFailure(err)
	if !ok {
		t.Fatalf("error %T is not a *Failure", err)
	}
	if failure.Kind != FailureUnavailable {
		t.Errorf("failure kind = %s, want unavailable", failure.Kind)
	}
}

func TestGeminiAdapterSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("request missing key query parameter")
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("unexpected request contents: %+v", req.Contents)
		}
		if req.SystemInstruction == nil {
			t.Error("system instruction missing")
		}

		json.NewEncoder(w).Encode(geminiTextResponse("generated copy"))
	}))
	defer server.Close()

	a := NewGeminiAdapter("test-key", WithGeminiBaseURL(server.URL))

	result, err := a.Invoke(context.Background(), operation.New(operation.GenerateTextParams{Prompt: "hi"}))
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}

	if result.Text != "generated copy" {
		t.Errorf("Text = %q, want %q", result.Text, "generated copy")
	}
	if result.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d, want 42", result.TokensUsed)
	}
	if result.Model != DefaultGeminiModel {
		t.Errorf("Model = %q, want %q", result.Model, DefaultGeminiModel)
	}
}

func TestGeminiAdapterStructuredResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Errorf("ResponseMIMEType = %q, want application/json", req.GenerationConfig.ResponseMIMEType)
		}

		json.NewEncoder(w).Encode(geminiTextResponse("```json\n{\"document_type\": \"tenancy_agreement\"}\n```"))
	}))
	defer server.Close()

	a := NewGeminiAdapter("test-key", WithGeminiBaseURL(server.URL))

	result, err := a.Invoke(context.Background(), operation.New(operation.ExtractDocumentInfoParams{DocumentText: "some tenancy text"}))
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}

	if result.Data["document_type"] != "tenancy_agreement" {
		t.Errorf("Data = %v, want document_type=tenancy_agreement", result.Data)
	}
}

func TestGeminiAdapterErrorTranslation(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind FailureKind
		fallback bool
	}{
		{name: "bad request", status: http.StatusBadRequest, wantKind: FailureInvalidInput, fallback: false},
		{name: "model not found", status: http.StatusNotFound, wantKind: FailureInvalidInput, fallback: false},
		{name: "bad credential", status: http.StatusUnauthorized, wantKind: FailureUnavailable, fallback: true},
		{name: "forbidden", status: http.StatusForbidden, wantKind: FailureUnavailable, fallback: true},
		{name: "rate limited", status: http.StatusTooManyRequests, wantKind: FailureTransient, fallback: true},
		{name: "server error", status: http.StatusInternalServerError, wantKind: FailureTransient, fallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(geminiErrorResponse{
					Error: geminiErrorDetail{Code: tt.status, Message: "upstream says no"},
				})
			}))
			defer server.Close()

			a := NewGeminiAdapter("test-key", WithGeminiBaseURL(server.URL))

			_, err := a.Invoke(context.Background(), operation.New(operation.GenerateTextParams{Prompt: "hi"}))
			failure, ok := AsFailure(err)
			if !ok {
				t.Fatalf("error %T is not a *Failure", err)
			}
			if failure.Kind != tt.wantKind {
				t.Errorf("failure kind = %s, want %s", failure.Kind, tt.wantKind)
			}
			if failure.TriggersFallback() != tt.fallback {
				t.Errorf("TriggersFallback() = %v, want %v", failure.TriggersFallback(), tt.fallback)
			}
		})
	}
}

func TestGeminiAdapterNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	a := NewGeminiAdapter("test-key", WithGeminiBaseURL(server.URL))

	_, err := a.Invoke(context.Background(), operation.New(operation.GenerateTextParams{Prompt: "hi"}))
	failure, ok := AsFailure(err)
	if !ok {
		t.Fatalf("error %T is not a *Failure", err)
	}
	if failure.Kind != FailureTransient {
		t.Errorf("failure kind = %s, want transient", failure.Kind)
	}
}

func TestGeminiAdapterEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer server.Close()

	a := NewGeminiAdapter("test-key", WithGeminiBaseURL(server.URL))

	_, err := a.Invoke(context.Background(), operation.New(operation.GenerateTextParams{Prompt: "hi"}))
	failure, ok := AsFailure(err)
	if !ok {
		t.Fatalf("error %T is not a *Failure", err)
	}
	if failure.Kind != FailureTransient {
		t.Errorf("failure kind = %s, want transient", failure.Kind)
	}
}
