// Package domain defines the chunked-envelope domain models. An envelope is
// ciphertext split into fixed-size, independently hashed chunks with a Merkle
// integrity tree, suitable for storage in constrained channels such as
// database columns or message frames.
package domain

import (
	"encoding/json"
	"time"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
)

// Chunk is one fixed-size slice of base64-encoded ciphertext.
//
// Index is a dense 0-based sequence number. Chunks are not guaranteed to
// arrive in index order; consumers must sort before reassembly.
type Chunk struct {
	Index uint   `json:"index"`
	Hash  string `json:"hash"`
	Data  string `json:"data"`
}

// SliceResult carries the output of slicing a content string: the ordered
// chunks, the digest of the full unsplit content, and the Merkle tree levels
// with the root as the final entry.
type SliceResult struct {
	Chunks       []Chunk
	Checksum     string
	MerkleLevels []string
}

// BlockResult is the persistable artifact produced by encrypting a payload
// into a chunked envelope. Immutable once produced.
//
// On the wire the timestamp travels as Unix epoch seconds, not RFC3339; see
// MarshalJSON.
type BlockResult struct {
	// Blocks holds the chunks ordered by index.
	Blocks []Chunk
	// Checksum is the digest of the full base64 ciphertext before splitting.
	Checksum string
	// MerkleRoot lists the Merkle tree levels in build order; the final entry
	// is the tree root.
	MerkleRoot []string
	// Timestamp records when the envelope was produced.
	Timestamp time.Time
}

// blockResultWire is the JSON shape of a BlockResult artifact.
type blockResultWire struct {
	Blocks     []Chunk  `json:"blocks"`
	Checksum   string   `json:"checksum"`
	MerkleRoot []string `json:"merkleRoot"`
	Timestamp  int64    `json:"timestamp"`
}

// MarshalJSON encodes the timestamp as Unix epoch seconds.
func (b BlockResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockResultWire{
		Blocks:     b.Blocks,
		Checksum:   b.Checksum,
		MerkleRoot: b.MerkleRoot,
		Timestamp:  b.Timestamp.Unix(),
	})
}

// UnmarshalJSON decodes the Unix epoch timestamp back into a time.Time.
func (b *BlockResult) UnmarshalJSON(data []byte) error {
	var wire blockResultWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	b.Blocks = wire.Blocks
	b.Checksum = wire.Checksum
	b.MerkleRoot = wire.MerkleRoot
	b.Timestamp = time.Unix(wire.Timestamp, 0).UTC()
	return nil
}

// DecryptedEnvelope is the result of opening a chunked envelope. It carries
// the decrypted payload together with the checksum of the reassembled
// ciphertext for caller-side audit trails.
type DecryptedEnvelope struct {
	// Payload is the decrypted JSON payload.
	Payload json.RawMessage
	// Signature is the recomputed HMAC-SHA512 payload signature.
	Signature []byte
	// OriginalChecksum is the verified checksum of the reassembled content.
	OriginalChecksum string
	// Timestamp records when the envelope was opened.
	Timestamp time.Time
}

// Unmarshal decodes the decrypted payload into v.
func (d *DecryptedEnvelope) Unmarshal(v any) error {
	if err := json.Unmarshal(d.Payload, v); err != nil {
		return cryptoDomain.ErrDeserialization
	}
	return nil
}
