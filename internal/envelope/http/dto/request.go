// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	customValidation "github.com/allisson/blockcrypt/internal/validation"
)

// SealEnvelopeRequest contains the parameters for sealing a payload into a
// new envelope version. The path is extracted from the URL parameter, not the
// request body.
type SealEnvelopeRequest struct {
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// Validate checks if the seal envelope request is valid.
func (r *SealEnvelopeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload,
			validation.Required,
			validation.Length(1, 0), // At least 1 byte
		),
	)
}

// EncryptRequest contains the payload for a stateless encrypt operation.
type EncryptRequest struct {
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload,
			validation.Required,
			validation.Length(1, 0),
		),
	)
}

// DecryptRequest carries a chunked envelope for a stateless decrypt
// operation. The shape mirrors the encrypt response.
type DecryptRequest struct {
	Blocks     []ChunkRequest `json:"blocks" binding:"required"`
	Checksum   string         `json:"checksum" binding:"required"`
	MerkleRoot []string       `json:"merkleRoot"`
}

// ChunkRequest is one chunk of a decrypt request.
type ChunkRequest struct {
	Index uint   `json:"index"`
	Hash  string `json:"hash"`
	Data  string `json:"data"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Blocks, validation.Required),
		validation.Field(&r.Checksum, validation.Required, customValidation.NotBlank),
	)
}

// ToBlockResult converts the request into the domain artifact.
func (r *DecryptRequest) ToBlockResult() *envelopeDomain.BlockResult {
	blocks := make([]envelopeDomain.Chunk, 0, len(r.Blocks))
	for _, block := range r.Blocks {
		blocks = append(blocks, envelopeDomain.Chunk{
			Index: block.Index,
			Hash:  block.Hash,
			Data:  block.Data,
		})
	}

	return &envelopeDomain.BlockResult{
		Blocks:     blocks,
		Checksum:   r.Checksum,
		MerkleRoot: r.MerkleRoot,
	}
}
