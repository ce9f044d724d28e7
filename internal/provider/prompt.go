// Package provider contains the adapters that back the AI gateway.
package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

// promptSpec is the model-agnostic rendering of one operation: the
// instructions to send and the shape of the answer to expect. Both the
// Gemini and OpenAI adapters build their wire requests from this so
// the per-operation branching lives in exactly one switch.
type promptSpec struct {
	System    string
	User      string
	WantJSON  bool
	MaxTokens int
}

const defaultMaxTokens = 1024

// buildPrompt renders an operation into a promptSpec. Parameters are
// validated here so both remote adapters reject bad input the same way.
func buildPrompt(op operation.Operation) (promptSpec, error) {
	if err := op.Params.Validate(); err != nil {
		return promptSpec{}, err
	}

	switch p := op.Params.(type) {
	case operation.GenerateTextParams:
		spec := promptSpec{
			System:    "You are a helpful assistant for a student rental marketplace.",
			User:      p.Prompt,
			WantJSON:  p.Format == operation.FormatJSON,
			MaxTokens: tokenBudget(p.MaxLength),
		}
		if spec.WantJSON {
			spec.System += " Respond with a single valid JSON object and nothing else."
		}
		return spec, nil

	case operation.PropertyDescriptionParams:
		var b strings.Builder
		fmt.Fprintf(&b, "Write a rental listing description for %q, a %s", p.Title, p.PropertyType)
		if p.City != "" {
			fmt.Fprintf(&b, " in %s", p.City)
		}
		if p.Bedrooms > 0 {
			fmt.Fprintf(&b, " with %d bedroom(s)", p.Bedrooms)
		}
		if p.Bathrooms > 0 {
			fmt.Fprintf(&b, " and %d bathroom(s)", p.Bathrooms)
		}
		b.WriteString(".")
		if len(p.Features) > 0 {
			fmt.Fprintf(&b, " Highlight these features: %s.", strings.Join(p.Features, ", "))
		}
		tone := p.Tone
		if tone == "" {
			tone = "professional"
		}
		fmt.Fprintf(&b, " Use a %s tone aimed at student tenants.", tone)
		return promptSpec{
			System:    "You write concise, accurate property listing copy. Never invent amenities that were not provided.",
			User:      b.String(),
			MaxTokens: tokenBudget(p.MaxLength),
		}, nil

	case operation.ExtractDocumentInfoParams:
		fields := p.Fields
		if len(fields) == 0 {
			fields = []string{"document_type", "parties", "dates", "amounts", "addresses"}
		}
		return promptSpec{
			System: "You extract structured information from rental documents. " +
				"Respond with a single valid JSON object and nothing else. " +
				"Use null for fields that are not present in the document.",
			User: fmt.Sprintf("Extract the fields %s from the following document:\n\n%s",
				strings.Join(fields, ", "), p.DocumentText),
			WantJSON:  true,
			MaxTokens: defaultMaxTokens,
		}, nil

	case operation.AnalyzeDocumentParams:
		analysis := p.AnalysisType
		if analysis == "" {
			analysis = operation.AnalysisSummary
		}
		instruction := map[operation.AnalysisType]string{
			operation.AnalysisSummary:    "Summarize the following rental document in plain language for a tenant.",
			operation.AnalysisCompliance: "Review the following rental document for UK tenancy compliance issues and list any problems found.",
			operation.AnalysisRisk:       "Identify clauses in the following rental document that carry risk for the tenant, with a short explanation each.",
		}[analysis]
		return promptSpec{
			System:    "You analyze rental and tenancy documents. Be factual and cite the relevant clause text.",
			User:      instruction + "\n\n" + p.DocumentText,
			MaxTokens: defaultMaxTokens,
		}, nil

	case operation.RecommendationParams:
		var b strings.Builder
		fmt.Fprintf(&b, "Recommend rental properties for user %s.", p.UserID)
		if p.City != "" {
			fmt.Fprintf(&b, " City: %s.", p.City)
		}
		if p.MaxBudget > 0 {
			fmt.Fprintf(&b, " Monthly budget up to %d.", p.MaxBudget)
		}
		if len(p.PropertyTypes) > 0 {
			fmt.Fprintf(&b, " Preferred property types: %s.", strings.Join(p.PropertyTypes, ", "))
		}
		max := p.MaxResults
		if max <= 0 {
			max = 5
		}
		fmt.Fprintf(&b, " Return at most %d recommendations.", max)
		return promptSpec{
			System: "You generate property search recommendations. " +
				"Respond with a single valid JSON object of the form " +
				`{"recommendations": [{"title": ..., "reason": ...}]} and nothing else.`,
			User:      b.String(),
			WantJSON:  true,
			MaxTokens: defaultMaxTokens,
		}, nil

	default:
		return promptSpec{}, fmt.Errorf("no prompt defined for operation %s", op.Kind)
	}
}

// tokenBudget converts a caller max-length hint (characters) into a
// token budget. Roughly 4 characters per token.
func tokenBudget(maxLength int) int {
	if maxLength <= 0 {
		return defaultMaxTokens
	}
	tokens := maxLength / 4
	if tokens < 64 {
		tokens = 64
	}
	return tokens
}

// parseStructured decodes a model's JSON answer into a generic map.
// Models wrap JSON in markdown fences often enough that stripping them
// here saves every adapter from doing it.
func parseStructured(text string) (map[string]interface{}, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("model returned malformed JSON: %w", err)
	}
	return data, nil
}
