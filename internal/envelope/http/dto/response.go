// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"
	"time"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
)

// EnvelopeResponse represents an envelope in API responses.
// The Payload field contains the decrypted payload and is only included in
// open responses. Must be transmitted over HTTPS in production.
type EnvelopeResponse struct {
	ID        string          `json:"id"`
	Path      string          `json:"path"`
	Version   uint            `json:"version"`
	KeyID     string          `json:"key_id"`
	Algorithm string          `json:"algorithm"`
	ChunkSize int             `json:"chunk_size"`
	Checksum  string          `json:"checksum"`
	Payload   json.RawMessage `json:"payload,omitempty"` // Only included in open responses
	CreatedAt time.Time       `json:"created_at"`
}

// MapEnvelopeToSealResponse converts a domain envelope to an API response for
// POST operations. The payload is excluded; only metadata is returned on seal.
func MapEnvelopeToSealResponse(envelope *envelopeDomain.Envelope) EnvelopeResponse {
	return EnvelopeResponse{
		ID:        envelope.ID.String(),
		Path:      envelope.Path,
		Version:   envelope.Version,
		KeyID:     envelope.KeyID,
		Algorithm: string(envelope.Algorithm),
		ChunkSize: envelope.ChunkSize,
		Checksum:  envelope.Checksum,
		CreatedAt: envelope.CreatedAt,
	}
}

// MapEnvelopeToOpenResponse converts a domain envelope to an API response for
// GET operations. The decrypted payload is included in the response.
func MapEnvelopeToOpenResponse(envelope *envelopeDomain.Envelope) EnvelopeResponse {
	response := MapEnvelopeToSealResponse(envelope)
	response.Payload = envelope.Payload
	return response
}

// DecryptResponse represents the result of a stateless decrypt operation.
type DecryptResponse struct {
	Payload   json.RawMessage `json:"payload"`
	Checksum  string          `json:"checksum"`
	Timestamp time.Time       `json:"timestamp"`
}

// MapDecryptedEnvelopeToResponse converts an opened envelope to an API response.
func MapDecryptedEnvelopeToResponse(decrypted *envelopeDomain.DecryptedEnvelope) DecryptResponse {
	return DecryptResponse{
		Payload:   decrypted.Payload,
		Checksum:  decrypted.OriginalChecksum,
		Timestamp: decrypted.Timestamp,
	}
}
