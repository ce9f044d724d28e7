package operation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{name: "generate text", input: "generateText", want: GenerateText},
		{name: "property description", input: "generatePropertyDescription", want: GeneratePropertyDescription},
		{name: "recommendations", input: "generateRecommendations", want: GenerateRecommendations},
		{name: "unknown", input: "summonDemon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong case", input: "GENERATETEXT", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrUnknownKind) {
					t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheableByDefault(t *testing.T) {
	for _, k := range Kinds {
		want := k == GenerateRecommendations
		if got := CacheableByDefault(k); got != want {
			t.Errorf("CacheableByDefault(%s) = %v, want %v", k, got, want)
		}
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		raw       string
		wantErr   string
		validate  func(*testing.T, Params)
	}{
		{
			name:      "generate text",
			operation: "generateText",
			raw:       `{"prompt":"hello","max_length":200,"format":"json"}`,
			validate: func(t *testing.T, p Params) {
				gp, ok := p.(GenerateTextParams)
				if !ok {
					t.Fatalf("ParseParams returned %T, want GenerateTextParams", p)
				}
				if gp.Prompt != "hello" || gp.MaxLength != 200 || gp.Format != FormatJSON {
					t.Errorf("unexpected params: %+v", gp)
				}
			},
		},
		{
			name:      "property description",
			operation: "generatePropertyDescription",
			raw:       `{"title":"Oak House","property_type":"flat","bedrooms":2,"features":["garden"]}`,
			validate: func(t *testing.T, p Params) {
				pp := p.(PropertyDescriptionParams)
				if pp.Title != "Oak House" || pp.Bedrooms != 2 {
					t.Errorf("unexpected params: %+v", pp)
				}
			},
		},
		{
			name:      "empty params bag allowed at parse time",
			operation: "generateText",
			raw:       "",
			validate: func(t *testing.T, p Params) {
				if p.Kind() != GenerateText {
					t.Errorf("Kind() = %v, want GenerateText", p.Kind())
				}
			},
		},
		{
			name:      "unknown operation",
			operation: "mineBitcoin",
			wantErr:   "unknown operation",
		},
		{
			name:      "unknown field rejected",
			operation: "generateText",
			raw:       `{"prompt":"hi","promt_typo":"x"}`,
			wantErr:   "invalid parameters",
		},
		{
			name:      "wrong type rejected",
			operation: "analyzeDocument",
			raw:       `{"document_text":42}`,
			wantErr:   "invalid parameters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.operation, json.RawMessage(tt.raw))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseParams expected error containing %q, got %+v", tt.wantErr, got)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseParams unexpected error: %v", err)
			}
			tt.validate(t, got)
		})
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{name: "valid text", params: GenerateTextParams{Prompt: "hi"}},
		{name: "missing prompt", params: GenerateTextParams{}, wantErr: true},
		{name: "whitespace prompt", params: GenerateTextParams{Prompt: "   "}, wantErr: true},
		{name: "negative max length", params: GenerateTextParams{Prompt: "hi", MaxLength: -1}, wantErr: true},
		{name: "bad format", params: GenerateTextParams{Prompt: "hi", Format: "xml"}, wantErr: true},
		{name: "valid description", params: PropertyDescriptionParams{Title: "Oak House", PropertyType: "flat"}},
		{name: "missing property type", params: PropertyDescriptionParams{Title: "Oak House"}, wantErr: true},
		{name: "valid extract", params: ExtractDocumentInfoParams{DocumentText: "tenancy agreement"}},
		{name: "missing document text", params: ExtractDocumentInfoParams{}, wantErr: true},
		{name: "valid analysis", params: AnalyzeDocumentParams{DocumentText: "doc", AnalysisType: AnalysisRisk}},
		{name: "bad analysis type", params: AnalyzeDocumentParams{DocumentText: "doc", AnalysisType: "astrology"}, wantErr: true},
		{name: "valid recommendations", params: RecommendationParams{UserID: "u1"}},
		{name: "missing user id", params: RecommendationParams{}, wantErr: true},
		{name: "negative budget", params: RecommendationParams{UserID: "u1", MaxBudget: -5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
