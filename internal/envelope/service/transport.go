package service

import (
	"encoding/base64"
	"time"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/blockcrypt/internal/crypto/service"
	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	"github.com/allisson/blockcrypt/internal/errors"
)

// DefaultChunkSize is the chunk size used when none is configured.
const DefaultChunkSize = 512

// Transport combines authenticated encryption with chunk slicing into a
// single encrypt/decrypt call producing and consuming persistable envelopes.
type Transport interface {
	// Encrypt encrypts the payload, base64-encodes the ciphertext, and slices
	// it into a chunked BlockResult.
	Encrypt(payload any) (*envelopeDomain.BlockResult, error)

	// Decrypt reassembles the blocks, verifies the integrity metadata,
	// base64-decodes the content, and decrypts the ciphertext.
	Decrypt(result *envelopeDomain.BlockResult) (*envelopeDomain.DecryptedEnvelope, error)
}

// ChunkedTransport implements Transport on top of a Cipher and a Slicer.
// Instances are immutable after construction and safe for concurrent use.
type ChunkedTransport struct {
	cipher    cryptoService.Cipher
	slicer    Slicer
	chunkSize int
}

// NewChunkedTransport creates a transport bound to the given cipher and
// slicer. A chunkSize of zero or less selects DefaultChunkSize.
func NewChunkedTransport(
	cipher cryptoService.Cipher,
	slicer Slicer,
	chunkSize int,
) (*ChunkedTransport, error) {
	if cipher == nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, "nil cipher")
	}
	if slicer == nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, "nil slicer")
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &ChunkedTransport{cipher: cipher, slicer: slicer, chunkSize: chunkSize}, nil
}

// Encrypt encrypts the payload into a chunked envelope.
func (c *ChunkedTransport) Encrypt(payload any) (*envelopeDomain.BlockResult, error) {
	ciphertext, err := c.cipher.Encrypt(payload)
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(ciphertext)
	sliced, err := c.slicer.Slice(encoded, c.chunkSize)
	if err != nil {
		return nil, err
	}

	return &envelopeDomain.BlockResult{
		Blocks:     sliced.Chunks,
		Checksum:   sliced.Checksum,
		MerkleRoot: sliced.MerkleLevels,
		Timestamp:  time.Now().UTC(),
	}, nil
}

// Decrypt opens a chunked envelope. Integrity checks run outside-in: chunk
// set shape and checksum first, then the Merkle levels when present, then
// the cipher's own authentication.
func (c *ChunkedTransport) Decrypt(
	result *envelopeDomain.BlockResult,
) (*envelopeDomain.DecryptedEnvelope, error) {
	if result == nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, "nil block result")
	}

	content, err := c.slicer.Join(result.Blocks, result.Checksum)
	if err != nil {
		return nil, err
	}

	if len(result.MerkleRoot) > 0 {
		hashes := make([]string, len(result.Blocks))
		for _, chunk := range result.Blocks {
			hashes[int(chunk.Index)] = chunk.Hash
		}
		if !verifyMerkleLevels(hashes, result.MerkleRoot) {
			return nil, envelopeDomain.ErrMerkleMismatch
		}
	}

	ciphertext, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrMalformedPayload, "invalid base64 content")
	}

	decrypted, err := c.cipher.Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}

	return &envelopeDomain.DecryptedEnvelope{
		Payload:          decrypted.Payload,
		Signature:        decrypted.Signature,
		OriginalChecksum: result.Checksum,
		Timestamp:        decrypted.Timestamp,
	}, nil
}
