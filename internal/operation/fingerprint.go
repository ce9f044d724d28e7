// Package operation defines the abstract AI operations the gateway can
// dispatch.
package operation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint computes the canonical cache key for an operation:
// SHA256 of the kind plus the canonicalized parameter bag. Two requests
// that are semantically identical (same values, different JSON key
// order) collide to the same fingerprint.
func Fingerprint(op Operation) (string, error) {
	canonical, err := canonicalJSON(op.Params)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize %s params: %w", op.Kind, err)
	}

	hash := sha256.Sum256(append([]byte(op.Kind+":"), canonical...))
	return hex.EncodeToString(hash[:]), nil
}

// canonicalJSON produces a stable byte representation of a value:
// marshal, decode into generic form, marshal again. encoding/json
// writes map keys in sorted order, which gives the stable key ordering
// and normalized value formatting the fingerprint depends on.
func canonicalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
