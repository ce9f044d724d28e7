// Package provider contains the adapters that back the AI gateway.
package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/operation"
)

// CustomName is the registry identifier for this adapter.
const CustomName = "custom"

// CustomAdapter is the free, local provider. It serves every operation
// from templates and text heuristics with no outbound calls, which
// makes it the only adapter left servable in zero-cost mode and the
// terminal fallback when the paid providers are down.
type CustomAdapter struct{}

// NewCustomAdapter creates the local template-based adapter.
func NewCustomAdapter() *CustomAdapter {
	return &CustomAdapter{}
}

// Name returns the provider identifier.
func (c *CustomAdapter) Name() string {
	return CustomName
}

// Supports reports which operations this adapter can perform. The
// local adapter covers all of them, at template quality.
func (c *CustomAdapter) Supports(kind operation.Kind) bool {
	_, err := operation.ParseKind(string(kind))
	return err == nil
}

// Invoke serves the operation locally. It never returns Transient or
// Unavailable; the only possible failure is InvalidInput.
func (c *CustomAdapter) Invoke(_ context.Context, op operation.Operation) (operation.Result, error) {
	if err := op.Params.Validate(); err != nil {
		return operation.Result{}, InvalidInput(CustomName, err)
	}

	switch p := op.Params.(type) {
	case operation.GenerateTextParams:
		return c.generateText(p), nil
	case operation.PropertyDescriptionParams:
		return c.propertyDescription(p), nil
	case operation.ExtractDocumentInfoParams:
		return c.extractDocumentInfo(p), nil
	case operation.AnalyzeDocumentParams:
		return c.analyzeDocument(p), nil
	case operation.RecommendationParams:
		return c.recommendations(p), nil
	default:
		return operation.Result{}, InvalidInput(CustomName, fmt.Errorf("unsupported operation %s", op.Kind))
	}
}

func (c *CustomAdapter) generateText(p operation.GenerateTextParams) operation.Result {
	text := fmt.Sprintf("Here is a response to your request: %s", p.Prompt)
	if p.MaxLength > 0 && len(text) > p.MaxLength {
		text = text[:p.MaxLength]
	}

	result := operation.Result{Text: text, Model: "custom-template-v1"}
	if p.Format == operation.FormatJSON {
		result.Data = map[string]interface{}{"response": text}
	}
	return result
}

func (c *CustomAdapter) propertyDescription(p operation.PropertyDescriptionParams) operation.Result {
	var b strings.Builder

	fmt.Fprintf(&b, "%s is a well-presented %s", p.Title, strings.ToLower(p.PropertyType))
	if p.City != "" {
		fmt.Fprintf(&b, " in %s", p.City)
	}
	b.WriteString(", ideal for student tenants.")

	if p.Bedrooms > 0 {
		fmt.Fprintf(&b, " The property offers %d bedroom(s)", p.Bedrooms)
		if p.Bathrooms > 0 {
			fmt.Fprintf(&b, " and %d bathroom(s)", p.Bathrooms)
		}
		b.WriteString(".")
	}

	if len(p.Features) > 0 {
		fmt.Fprintf(&b, " Features include %s.", strings.Join(p.Features, ", "))
	}

	b.WriteString(" Early viewing is recommended.")

	text := b.String()
	if p.MaxLength > 0 && len(text) > p.MaxLength {
		text = text[:p.MaxLength]
	}

	return operation.Result{Text: text, Model: "custom-template-v1"}
}

// Heuristic patterns for document extraction.
var (
	datePattern   = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)
	amountPattern = regexp.MustCompile(`£\s?\d[\d,]*(?:\.\d{2})?`)
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	postcodePat   = regexp.MustCompile(`\b[A-Z]{1,2}\d[A-Z\d]?\s?\d[A-Z]{2}\b`)
)

func (c *CustomAdapter) extractDocumentInfo(p operation.ExtractDocumentInfoParams) operation.Result {
	data := map[string]interface{}{
		"dates":     uniqueMatches(datePattern, p.DocumentText),
		"amounts":   uniqueMatches(amountPattern, p.DocumentText),
		"emails":    uniqueMatches(emailPattern, p.DocumentText),
		"postcodes": uniqueMatches(postcodePat, p.DocumentText),
	}

	lower := strings.ToLower(p.DocumentText)
	switch {
	case strings.Contains(lower, "tenancy agreement") || strings.Contains(lower, "assured shorthold"):
		data["document_type"] = "tenancy_agreement"
	case strings.Contains(lower, "gas safety"):
		data["document_type"] = "gas_safety_certificate"
	case strings.Contains(lower, "energy performance") || strings.Contains(lower, "epc"):
		data["document_type"] = "epc"
	case strings.Contains(lower, "right to rent"):
		data["document_type"] = "right_to_rent"
	default:
		data["document_type"] = "unknown"
	}

	return operation.Result{
		Text:  "Extracted document information using pattern matching.",
		Data:  data,
		Model: "custom-extractor-v1",
	}
}

func (c *CustomAdapter) analyzeDocument(p operation.AnalyzeDocumentParams) operation.Result {
	analysis := p.AnalysisType
	if analysis == "" {
		analysis = operation.AnalysisSummary
	}

	var b strings.Builder
	switch analysis {
	case operation.AnalysisSummary:
		b.WriteString(firstSentences(p.DocumentText, 3))
	case operation.AnalysisCompliance:
		lower := strings.ToLower(p.DocumentText)
		var missing []string
		for _, required := range []string{"deposit", "gas safety", "energy performance"} {
			if !strings.Contains(lower, required) {
				missing = append(missing, required)
			}
		}
		if len(missing) == 0 {
			b.WriteString("No obvious compliance gaps detected in the document text.")
		} else {
			fmt.Fprintf(&b, "The document does not mention: %s. These are commonly required in UK tenancy paperwork.", strings.Join(missing, ", "))
		}
	case operation.AnalysisRisk:
		lower := strings.ToLower(p.DocumentText)
		var flags []string
		riskKeywords := []struct{ keyword, note string }{
			{"penalty", "penalty clause present"},
			{"forfeit", "forfeiture language present"},
			{"guarantor", "guarantor obligation present"},
			{"joint and several", "joint and several liability present"},
		}
		for _, rk := range riskKeywords {
			if strings.Contains(lower, rk.keyword) {
				flags = append(flags, rk.note)
			}
		}
		if len(flags) == 0 {
			b.WriteString("No high-risk keywords detected.")
		} else {
			fmt.Fprintf(&b, "Risk flags: %s.", strings.Join(flags, "; "))
		}
	}

	return operation.Result{Text: b.String(), Model: "custom-analyzer-v1"}
}

func (c *CustomAdapter) recommendations(p operation.RecommendationParams) operation.Result {
	max := p.MaxResults
	if max <= 0 || max > 5 {
		max = 5
	}

	templates := []map[string]interface{}{
		{"title": "Modern en-suite room in shared house", "reason": "popular with students and within typical budgets"},
		{"title": "Two-bed flat near campus", "reason": "short walk to university facilities"},
		{"title": "Studio apartment with bills included", "reason": "predictable monthly costs"},
		{"title": "Four-bed student house", "reason": "suits groups sharing"},
		{"title": "One-bed flat close to transport links", "reason": "good for commuting students"},
	}

	recs := make([]map[string]interface{}, 0, max)
	for i := 0; i < max && i < len(templates); i++ {
		rec := map[string]interface{}{
			"title":  templates[i]["title"],
			"reason": templates[i]["reason"],
		}
		if p.City != "" {
			rec["city"] = p.City
		}
		if p.MaxBudget > 0 {
			rec["within_budget"] = p.MaxBudget
		}
		recs = append(recs, rec)
	}

	return operation.Result{
		Text:  fmt.Sprintf("Generated %d recommendations for user %s.", len(recs), p.UserID),
		Data:  map[string]interface{}{"recommendations": recs},
		Model: "custom-recommender-v1",
	}
}

// uniqueMatches returns deduplicated regex matches preserving order.
func uniqueMatches(re *regexp.Regexp, text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// firstSentences returns up to n sentences from text.
func firstSentences(text string, n int) string {
	clean := strings.Join(strings.Fields(text), " ")
	var out []string
	for _, s := range strings.SplitAfter(clean, ". ") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return strings.TrimSpace(strings.Join(out, ""))
}
