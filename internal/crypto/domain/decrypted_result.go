package domain

import (
	"encoding/json"
	"time"
)

// DecryptedResult is the outcome of a successful authenticated decryption.
// It is constructed fresh per decrypt call and never reused.
type DecryptedResult struct {
	// Payload is the decoded JSON payload.
	Payload json.RawMessage
	// Signature is the recomputed HMAC-SHA512 signature over the payload.
	Signature []byte
	// Timestamp is the UTC instant the decryption completed.
	Timestamp time.Time
}

// Unmarshal decodes the payload into v.
func (r *DecryptedResult) Unmarshal(v any) error {
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return ErrDeserialization
	}
	return nil
}
