// Package service implements chunked-envelope assembly: slicing ciphertext
// into content-hashed chunks with a Merkle integrity tree, and the transport
// that combines slicing with authenticated encryption.
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	"github.com/allisson/blockcrypt/internal/errors"
)

// Slicer splits content into ordered, content-hashed chunks and rejoins them
// with integrity verification.
type Slicer interface {
	// Slice splits content into non-overlapping chunks of length chunkSize
	// (the last chunk may be shorter), numbered 0..n-1, each with a SHA-256
	// content hash, plus a whole-content checksum and Merkle tree levels.
	Slice(content string, chunkSize int) (*envelopeDomain.SliceResult, error)

	// Join reassembles chunks into the original content. Caller-supplied
	// order is not trusted: chunks are sorted by index first. Fails with
	// ErrMalformedChunkSet on index gaps or duplicates and with
	// ErrChecksumMismatch when the reassembled digest disagrees.
	Join(chunks []envelopeDomain.Chunk, checksum string) (string, error)
}

// SHA256Slicer implements Slicer with SHA-256 content hashes.
type SHA256Slicer struct{}

// NewSlicer creates a new SHA256Slicer.
func NewSlicer() *SHA256Slicer {
	return &SHA256Slicer{}
}

// Slice splits content into chunks of chunkSize and builds the integrity
// metadata. Empty content yields a single empty chunk so the envelope shape
// stays uniform.
func (s *SHA256Slicer) Slice(content string, chunkSize int) (*envelopeDomain.SliceResult, error) {
	if chunkSize <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid chunk size %d", chunkSize)
	}

	count := (len(content) + chunkSize - 1) / chunkSize
	if count == 0 {
		count = 1
	}

	chunks := make([]envelopeDomain.Chunk, 0, count)
	hashes := make([]string, 0, count)
	for i := range count {
		start := i * chunkSize
		end := min(start+chunkSize, len(content))
		data := content[start:end]
		hash := digest(data)
		chunks = append(chunks, envelopeDomain.Chunk{
			Index: uint(i),
			Hash:  hash,
			Data:  data,
		})
		hashes = append(hashes, hash)
	}

	return &envelopeDomain.SliceResult{
		Chunks:       chunks,
		Checksum:     digest(content),
		MerkleLevels: merkleLevels(hashes),
	}, nil
}

// Join sorts the chunks by index, validates the index sequence and each
// chunk's content hash, and verifies the whole-content checksum.
func (s *SHA256Slicer) Join(chunks []envelopeDomain.Chunk, checksum string) (string, error) {
	if len(chunks) == 0 {
		return "", envelopeDomain.ErrMalformedChunkSet
	}

	ordered := make([]envelopeDomain.Chunk, len(chunks))
	copy(ordered, chunks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	var sb strings.Builder
	for i, chunk := range ordered {
		if chunk.Index != uint(i) {
			return "", errors.Wrapf(envelopeDomain.ErrMalformedChunkSet,
				"expected index %d, got %d", i, chunk.Index)
		}
		if digest(chunk.Data) != chunk.Hash {
			return "", errors.Wrapf(envelopeDomain.ErrChecksumMismatch, "chunk %d", chunk.Index)
		}
		sb.WriteString(chunk.Data)
	}

	content := sb.String()
	if digest(content) != checksum {
		return "", envelopeDomain.ErrChecksumMismatch
	}

	return content, nil
}

// digest returns the hex-encoded SHA-256 digest of the string bytes.
func digest(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
