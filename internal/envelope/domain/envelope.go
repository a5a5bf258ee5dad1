package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
)

// Envelope represents a persisted chunked envelope with versioning metadata.
// Each write to a path creates a new row with an incremented version number;
// the chunks themselves live in a separate blocks table keyed by envelope ID.
type Envelope struct {
	// ID is the unique identifier for this specific envelope version.
	ID uuid.UUID
	// Path is the logical key used to access the envelope (e.g., "/app/report").
	Path string
	// Version is the monotonically increasing version number for this path.
	Version uint
	// KeyID references the keyring entry used to encrypt this envelope.
	KeyID string
	// Algorithm records the cipher algorithm used.
	Algorithm cryptoDomain.Algorithm
	// ChunkSize is the chunk size the content was sliced with.
	ChunkSize int
	// Checksum is the digest of the full base64 ciphertext.
	Checksum string
	// MerkleRoot lists the Merkle tree levels, root last.
	MerkleRoot []string
	// Blocks holds the chunks ordered by index. Populated on read.
	Blocks []Chunk
	// CreatedAt is the UTC timestamp when this version was created.
	CreatedAt time.Time
	// DeletedAt marks when this envelope was soft-deleted (nil if active).
	DeletedAt *time.Time
	// Payload holds the decrypted payload in memory only; populated on open.
	Payload json.RawMessage `json:"-"`
	// Signature holds the recomputed payload signature; populated on open.
	Signature []byte `json:"-"`
}

// BlockResult converts the persisted envelope back into the wire artifact
// consumed by the transport layer.
func (e *Envelope) BlockResult() *BlockResult {
	return &BlockResult{
		Blocks:     e.Blocks,
		Checksum:   e.Checksum,
		MerkleRoot: e.MerkleRoot,
		Timestamp:  e.CreatedAt,
	}
}
