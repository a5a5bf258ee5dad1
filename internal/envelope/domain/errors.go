package domain

import (
	"github.com/allisson/blockcrypt/internal/errors"
)

// Envelope-specific error definitions.
var (
	// ErrEnvelopeNotFound indicates no envelope exists at the specified path.
	ErrEnvelopeNotFound = errors.Wrap(errors.ErrNotFound, "envelope not found")

	// ErrChecksumMismatch indicates the digest of the reassembled content does
	// not match the recorded checksum. Deterministic; never retried.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrChecksumMismatch = errors.Wrap(errors.ErrIntegrity, "content checksum mismatch")

	// ErrMalformedChunkSet indicates the chunk indices are not exactly 0..n-1
	// with no gaps or duplicates.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrMalformedChunkSet = errors.Wrap(errors.ErrIntegrity, "malformed chunk set")

	// ErrMerkleMismatch indicates the recorded Merkle levels do not match the
	// levels recomputed from the chunk hashes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrMerkleMismatch = errors.Wrap(errors.ErrIntegrity, "merkle tree mismatch")
)
