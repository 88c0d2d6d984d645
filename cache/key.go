package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DeriveKey computes the content-addressed cache key for an input made
// on behalf of the named requester.
//
// Structured inputs are canonicalized to JSON with lexically sorted
// keys so logically equal payloads always hash alike; plain strings are
// used verbatim; anything else falls back to a generic serialization
// and finally to a string coercion. Key derivation never fails.
//
// When identity is non-empty the pre-digest string is prefixed with
// "identity:" so distinct requesters sharing one store never collide on
// identical payload text.
func DeriveKey(identity string, input any) string {
	payload := canonicalPayload(input)
	if identity != "" {
		payload = identity + ":" + payload
	}
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func canonicalPayload(input any) string {
	switch v := input.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}

	data, err := json.Marshal(input)
	if err != nil {
		// Unserializable inputs coerce to their string form.
		return fmt.Sprintf("%v", input)
	}

	// Round-trip through a map to sort object keys lexically; inputs
	// that are not JSON objects keep their direct serialization.
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return string(data)
	}
	canonical, err := json.Marshal(fields)
	if err != nil {
		return string(data)
	}
	return string(canonical)
}
