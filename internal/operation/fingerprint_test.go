package operation

import (
	"encoding/json"
	"testing"
)

func TestFingerprintDeterministic(t *testing.T) {
	op := New(RecommendationParams{UserID: "u1", City: "Leeds", MaxBudget: 800})

	fp1, err := Fingerprint(op)
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}
	fp2, err := Fingerprint(op)
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}

	if fp1 != fp2 {
		t.Errorf("fingerprints differ for identical operation: %s != %s", fp1, fp2)
	}
	if len(fp1) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(fp1))
	}
}

func TestFingerprintKeyOrderIndependent(t *testing.T) {
	// Same parameter values, different JSON key order on the wire.
	p1, err := ParseParams("generateRecommendations", json.RawMessage(`{"user_id":"u1","city":"Leeds","max_budget":800}`))
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	p2, err := ParseParams("generateRecommendations", json.RawMessage(`{"max_budget":800,"city":"Leeds","user_id":"u1"}`))
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}

	fp1, err := Fingerprint(New(p1))
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fp2, err := Fingerprint(New(p2))
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if fp1 != fp2 {
		t.Errorf("semantically identical requests produced different fingerprints: %s != %s", fp1, fp2)
	}
}

func TestFingerprintDistinguishes(t *testing.T) {
	base := New(RecommendationParams{UserID: "u1", City: "Leeds"})
	fpBase, _ := Fingerprint(base)

	// Different values collide nowhere.
	other := New(RecommendationParams{UserID: "u2", City: "Leeds"})
	fpOther, _ := Fingerprint(other)
	if fpBase == fpOther {
		t.Error("different user_id produced the same fingerprint")
	}

	// Same params under a different kind collide nowhere either.
	text := New(GenerateTextParams{Prompt: "x"})
	fpText, _ := Fingerprint(text)
	if fpBase == fpText {
		t.Error("different kinds produced the same fingerprint")
	}
}
