// Package usecase implements business logic orchestration for chunked
// envelopes: sealing payloads into persisted, versioned envelopes and opening
// them back with full integrity verification.
package usecase

import (
	"context"

	"github.com/google/uuid"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
)

// EnvelopeRepository defines the interface for envelope persistence operations.
type EnvelopeRepository interface {
	Create(ctx context.Context, envelope *envelopeDomain.Envelope) error
	Delete(ctx context.Context, envelopeID uuid.UUID) error
	GetByPath(ctx context.Context, path string) (*envelopeDomain.Envelope, error)
	GetByPathAndVersion(ctx context.Context, path string, version uint) (*envelopeDomain.Envelope, error)
	List(ctx context.Context, offset, limit int) ([]*envelopeDomain.Envelope, error)
}

// EnvelopeUseCase defines the interface for envelope business logic.
type EnvelopeUseCase interface {
	// Seal encrypts the payload with the active key and persists it as a new
	// envelope version at the given path.
	Seal(ctx context.Context, path string, payload any) (*envelopeDomain.Envelope, error)
	// Open retrieves, verifies, and decrypts the latest envelope at the path.
	// The returned envelope carries the decrypted payload in its Payload field.
	Open(ctx context.Context, path string) (*envelopeDomain.Envelope, error)
	// OpenVersion retrieves, verifies, and decrypts a specific envelope version.
	OpenVersion(ctx context.Context, path string, version uint) (*envelopeDomain.Envelope, error)
	// Delete performs a soft delete on the latest envelope at the path.
	Delete(ctx context.Context, path string) error
	// List retrieves envelope metadata without blocks, ordered by path.
	List(ctx context.Context, offset, limit int) ([]*envelopeDomain.Envelope, error)
	// Encrypt produces a chunked BlockResult with the active key without
	// persisting anything.
	Encrypt(ctx context.Context, payload any) (*envelopeDomain.BlockResult, error)
	// Decrypt opens a caller-supplied BlockResult with the active key.
	Decrypt(ctx context.Context, result *envelopeDomain.BlockResult) (*envelopeDomain.DecryptedEnvelope, error)
}
