// Package operation defines the abstract AI operations the gateway can
// dispatch. Each operation kind carries its own strongly-typed parameter
// shape; the gateway and HTTP layer only ever see the common Params
// interface and switch on the kind.
package operation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the supported AI operations.
type Kind string

const (
	// GenerateText produces free-form text from a prompt.
	GenerateText Kind = "generateText"

	// GeneratePropertyDescription produces a marketing description
	// for a rental property listing.
	GeneratePropertyDescription Kind = "generatePropertyDescription"

	// ExtractDocumentInfo pulls named fields out of a document
	// (tenancy agreements, right-to-rent checks, certificates).
	ExtractDocumentInfo Kind = "extractDocumentInfo"

	// AnalyzeDocument produces an analysis (summary, compliance,
	// risk) of a document.
	AnalyzeDocument Kind = "analyzeDocument"

	// GenerateRecommendations produces personalized property
	// recommendations. This is the one cacheable-by-default kind.
	GenerateRecommendations Kind = "generateRecommendations"
)

// Kinds lists every supported operation kind in a stable order.
var Kinds = []Kind{
	GenerateText,
	GeneratePropertyDescription,
	ExtractDocumentInfo,
	AnalyzeDocument,
	GenerateRecommendations,
}

// ErrUnknownKind is returned when an operation name does not match any
// supported kind.
var ErrUnknownKind = errors.New("unknown operation kind")

// ParseKind converts an operation name from the wire into a Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// CacheableByDefault reports whether results for this kind may be
// served from the result cache when configuration does not say
// otherwise. Only recommendation generation is a pure function of its
// input; the generative kinds are expected to vary per call.
func CacheableByDefault(k Kind) bool {
	return k == GenerateRecommendations
}

// Params is the operation-specific parameter bag. Implementations are
// plain structs decoded from JSON; Validate reports caller errors that
// no adapter could recover from.
type Params interface {
	Kind() Kind
	Validate() error
}

// Operation is one immutable dispatch request: a kind plus its typed
// parameters. Constructed per call, discarded after dispatch.
type Operation struct {
	Kind   Kind
	Params Params
}

// New builds an Operation from typed parameters.
func New(params Params) Operation {
	return Operation{Kind: params.Kind(), Params: params}
}

// ResponseFormat hints how generated text should be shaped.
type ResponseFormat string

const (
	FormatText ResponseFormat = "text"
	FormatJSON ResponseFormat = "json"
)

// GenerateTextParams are the parameters for GenerateText.
type GenerateTextParams struct {
	Prompt    string         `json:"prompt"`
	MaxLength int            `json:"max_length,omitempty"`
	Format    ResponseFormat `json:"format,omitempty"`
}

func (GenerateTextParams) Kind() Kind { return GenerateText }

func (p GenerateTextParams) Validate() error {
	if strings.TrimSpace(p.Prompt) == "" {
		return errors.New("prompt is required")
	}
	if p.MaxLength < 0 {
		return errors.New("max_length must not be negative")
	}
	if p.Format != "" && p.Format != FormatText && p.Format != FormatJSON {
		return fmt.Errorf("format %q is invalid, must be one of: text, json", p.Format)
	}
	return nil
}

// PropertyDescriptionParams are the parameters for
// GeneratePropertyDescription.
type PropertyDescriptionParams struct {
	Title        string   `json:"title"`
	PropertyType string   `json:"property_type"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Bathrooms    int      `json:"bathrooms,omitempty"`
	City         string   `json:"city,omitempty"`
	Features     []string `json:"features,omitempty"`
	Tone         string   `json:"tone,omitempty"`
	MaxLength    int      `json:"max_length,omitempty"`
}

func (PropertyDescriptionParams) Kind() Kind { return GeneratePropertyDescription }

func (p PropertyDescriptionParams) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(p.PropertyType) == "" {
		return errors.New("property_type is required")
	}
	if p.Bedrooms < 0 || p.Bathrooms < 0 {
		return errors.New("bedrooms and bathrooms must not be negative")
	}
	return nil
}

// ExtractDocumentInfoParams are the parameters for ExtractDocumentInfo.
type ExtractDocumentInfoParams struct {
	DocumentText string   `json:"document_text"`
	ContentType  string   `json:"content_type,omitempty"`
	Fields       []string `json:"fields,omitempty"`
}

func (ExtractDocumentInfoParams) Kind() Kind { return ExtractDocumentInfo }

func (p ExtractDocumentInfoParams) Validate() error {
	if strings.TrimSpace(p.DocumentText) == "" {
		return errors.New("document_text is required")
	}
	return nil
}

// AnalysisType selects the flavor of document analysis.
type AnalysisType string

const (
	AnalysisSummary    AnalysisType = "summary"
	AnalysisCompliance AnalysisType = "compliance"
	AnalysisRisk       AnalysisType = "risk"
)

// AnalyzeDocumentParams are the parameters for AnalyzeDocument.
type AnalyzeDocumentParams struct {
	DocumentText string       `json:"document_text"`
	AnalysisType AnalysisType `json:"analysis_type,omitempty"`
}

func (AnalyzeDocumentParams) Kind() Kind { return AnalyzeDocument }

func (p AnalyzeDocumentParams) Validate() error {
	if strings.TrimSpace(p.DocumentText) == "" {
		return errors.New("document_text is required")
	}
	switch p.AnalysisType {
	case "", AnalysisSummary, AnalysisCompliance, AnalysisRisk:
		return nil
	default:
		return fmt.Errorf("analysis_type %q is invalid, must be one of: summary, compliance, risk", p.AnalysisType)
	}
}

// RecommendationParams are the parameters for GenerateRecommendations.
type RecommendationParams struct {
	UserID        string   `json:"user_id"`
	City          string   `json:"city,omitempty"`
	MaxBudget     int      `json:"max_budget,omitempty"`
	PropertyTypes []string `json:"property_types,omitempty"`
	MaxResults    int      `json:"max_results,omitempty"`
}

func (RecommendationParams) Kind() Kind { return GenerateRecommendations }

func (p RecommendationParams) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("user_id is required")
	}
	if p.MaxBudget < 0 {
		return errors.New("max_budget must not be negative")
	}
	if p.MaxResults < 0 {
		return errors.New("max_results must not be negative")
	}
	return nil
}

// ParseParams decodes a raw JSON parameter bag into the typed struct
// for the named operation. Unknown fields are rejected so caller typos
// surface as errors instead of silently ignored parameters.
func ParseParams(name string, raw json.RawMessage) (Params, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	decode := func(dst Params) (Params, error) {
		dec := json.NewDecoder(strings.NewReader(string(raw)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return nil, fmt.Errorf("invalid parameters for %s: %w", kind, err)
		}
		return dst, nil
	}

	switch kind {
	case GenerateText:
		p, err := decode(&GenerateTextParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*GenerateTextParams), nil
	case GeneratePropertyDescription:
		p, err := decode(&PropertyDescriptionParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*PropertyDescriptionParams), nil
	case ExtractDocumentInfo:
		p, err := decode(&ExtractDocumentInfoParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*ExtractDocumentInfoParams), nil
	case AnalyzeDocument:
		p, err := decode(&AnalyzeDocumentParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*AnalyzeDocumentParams), nil
	case GenerateRecommendations:
		p, err := decode(&RecommendationParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*RecommendationParams), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Result is the uniform payload returned by every adapter regardless of
// the backing provider.
type Result struct {
	// Text is the generated or analyzed text content.
	Text string `json:"text,omitempty"`

	// Data holds structured output for extraction/recommendation
	// operations.
	Data map[string]interface{} `json:"data,omitempty"`

	// Model records which underlying model produced the result.
	Model string `json:"model,omitempty"`

	// TokensUsed is the provider-reported token count, when known.
	TokensUsed int `json:"tokens_used,omitempty"`
}
