package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

func TestOpenAIAdapterNoKey(t *testing.T) {
	a := NewOpenAIAdapter("")

	_, err := a.Invoke(context.Background(), operation.New(operation.GenerateTextParams{Prompt: "hi"}))
	failure, ok := AsFailure(err)
	if !ok {
		t.Fatalf("error %T is not a *Failure", err)
	}
	if failure.Kind != FailureUnavailable {
		t.Errorf("failure kind = %s, want unavailable", failure.Kind)
	}
}

func TestOpenAIAdapterSupports(t *testing.T) {
	a := NewOpenAIAdapter("key")
	for _, k := range operation.Kinds {
		if !a.Supports(k) {
			t.Errorf("Supports(%s) = false, want true", k)
		}
	}
	if a.Supports("notAnOperation") {
		t.Error("Supports(notAnOperation) = true, want false")
	}
}

func TestOpenAIAdapterInvalidParams(t *testing.T) {
	a := NewOpenAIAdapter("key")

	_, err := a.Invoke(context.Background(), operation.New(operation.GenerateTextParams{}))
	failure, ok := AsFailure(err)
	if !ok {
		t.Fatalf("error %T is not a *Failure", err)
	}
	if failure.Kind != FailureInvalidInput {
		t.Errorf("failure kind = %s, want invalid_input", failure.Kind)
	}
}

func TestOpenAITranslateError(t *testing.T) {
	a := NewOpenAIAdapter("key")

	tests := []struct {
		name     string
		err      error
		wantKind FailureKind
	}{
		{
			name:     "bad request",
			err:      &openai.APIError{HTTPStatusCode: http.StatusBadRequest},
			wantKind: FailureInvalidInput,
		},
		{
			name:     "not found",
			err:      &openai.APIError{HTTPStatusCode: http.StatusNotFound},
			wantKind: FailureInvalidInput,
		},
		{
			name:     "unauthorized",
			err:      &openai.APIError{HTTPStatusCode: http.StatusUnauthorized},
			wantKind: FailureUnavailable,
		},
		{
			name:     "forbidden",
			err:      &openai.APIError{HTTPStatusCode: http.StatusForbidden},
			wantKind: FailureUnavailable,
		},
		{
			name:     "rate limited",
			err:      &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests},
			wantKind: FailureTransient,
		},
		{
			name:     "server error",
			err:      &openai.APIError{HTTPStatusCode: http.StatusInternalServerError},
			wantKind: FailureTransient,
		},
		{
			name:     "plain network error",
			err:      errors.New("connection reset by peer"),
			wantKind: FailureTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := a.translateError(tt.err)
			if failure.Kind != tt.wantKind {
				t.Errorf("translateError kind = %s, want %s", failure.Kind, tt.wantKind)
			}
			if failure.Adapter != OpenAIName {
				t.Errorf("failure adapter = %s, want %s", failure.Adapter, OpenAIName)
			}
			if !errors.Is(failure, tt.err) {
				t.Error("failure should wrap the original error")
			}
		})
	}
}
