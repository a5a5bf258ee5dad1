package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/blockcrypt/internal/crypto/service"
	"github.com/allisson/blockcrypt/internal/database"
	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	envelopeService "github.com/allisson/blockcrypt/internal/envelope/service"
	apperrors "github.com/allisson/blockcrypt/internal/errors"
)

// envelopeUseCase implements the EnvelopeUseCase interface.
type envelopeUseCase struct {
	txManager     database.TxManager
	envelopeRepo  EnvelopeRepository
	keyRing       *cryptoDomain.KeyRing
	cipherManager cryptoService.CipherManager
	slicer        envelopeService.Slicer
	chunkSize     int
}

// transportForKey builds a chunked transport bound to the given key ring entry.
func (e *envelopeUseCase) transportForKey(keyID string) (envelopeService.Transport, error) {
	key, found := e.keyRing.Get(keyID)
	if !found {
		return nil, apperrors.Wrapf(cryptoDomain.ErrKeyNotFound, "%s", keyID)
	}

	cipher, err := e.cipherManager.CreateCipher(key.Material)
	if err != nil {
		return nil, err
	}

	return envelopeService.NewChunkedTransport(cipher, e.slicer, e.chunkSize)
}

// Seal encrypts the payload with the active key and persists it as a new
// envelope version at the given path.
func (e *envelopeUseCase) Seal(
	ctx context.Context,
	path string,
	payload any,
) (*envelopeDomain.Envelope, error) {
	activeKeyID := e.keyRing.ActiveKeyID()
	activeKey, found := e.keyRing.Get(activeKeyID)
	if !found {
		return nil, cryptoDomain.ErrActiveKeyNotFound
	}

	transport, err := e.transportForKey(activeKeyID)
	if err != nil {
		return nil, err
	}

	result, err := transport.Encrypt(payload)
	if err != nil {
		return nil, err
	}

	newEnvelope := &envelopeDomain.Envelope{
		ID:         uuid.Must(uuid.NewV7()),
		Path:       path,
		KeyID:      activeKeyID,
		Algorithm:  activeKey.Material.Algorithm(),
		ChunkSize:  e.chunkSize,
		Checksum:   result.Checksum,
		MerkleRoot: result.MerkleRoot,
		Blocks:     result.Blocks,
		CreatedAt:  time.Now().UTC(),
	}

	// The version read and the insert share a transaction so concurrent seals
	// of the same path surface as a clean conflict instead of a raw constraint
	// violation.
	err = e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var version uint = 1
		existing, err := e.envelopeRepo.GetByPath(txCtx, path)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			version = existing.Version + 1
		}
		newEnvelope.Version = version

		return e.envelopeRepo.Create(txCtx, newEnvelope)
	})
	if err != nil {
		return nil, err
	}

	return newEnvelope, nil
}

// Open retrieves, verifies, and decrypts the latest envelope at the path.
func (e *envelopeUseCase) Open(ctx context.Context, path string) (*envelopeDomain.Envelope, error) {
	envelope, err := e.envelopeRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}

	return e.openEnvelope(envelope)
}

// OpenVersion retrieves, verifies, and decrypts a specific envelope version.
func (e *envelopeUseCase) OpenVersion(
	ctx context.Context,
	path string,
	version uint,
) (*envelopeDomain.Envelope, error) {
	envelope, err := e.envelopeRepo.GetByPathAndVersion(ctx, path, version)
	if err != nil {
		return nil, err
	}

	return e.openEnvelope(envelope)
}

// openEnvelope decrypts a persisted envelope with the key it was sealed with.
func (e *envelopeUseCase) openEnvelope(
	envelope *envelopeDomain.Envelope,
) (*envelopeDomain.Envelope, error) {
	transport, err := e.transportForKey(envelope.KeyID)
	if err != nil {
		return nil, err
	}

	opened, err := transport.Decrypt(envelope.BlockResult())
	if err != nil {
		return nil, err
	}

	envelope.Payload = opened.Payload
	envelope.Signature = opened.Signature

	return envelope, nil
}

// Delete performs a soft delete on the latest envelope at the path.
func (e *envelopeUseCase) Delete(ctx context.Context, path string) error {
	envelope, err := e.envelopeRepo.GetByPath(ctx, path)
	if err != nil {
		return err
	}

	return e.envelopeRepo.Delete(ctx, envelope.ID)
}

// List retrieves envelope metadata without blocks, ordered by path.
func (e *envelopeUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*envelopeDomain.Envelope, error) {
	return e.envelopeRepo.List(ctx, offset, limit)
}

// Encrypt produces a chunked BlockResult with the active key without
// persisting anything.
func (e *envelopeUseCase) Encrypt(
	ctx context.Context,
	payload any,
) (*envelopeDomain.BlockResult, error) {
	transport, err := e.transportForKey(e.keyRing.ActiveKeyID())
	if err != nil {
		return nil, err
	}

	return transport.Encrypt(payload)
}

// Decrypt opens a caller-supplied BlockResult with the active key.
func (e *envelopeUseCase) Decrypt(
	ctx context.Context,
	result *envelopeDomain.BlockResult,
) (*envelopeDomain.DecryptedEnvelope, error) {
	transport, err := e.transportForKey(e.keyRing.ActiveKeyID())
	if err != nil {
		return nil, err
	}

	return transport.Decrypt(result)
}

// NewEnvelopeUseCase creates a new envelope use case instance with the
// provided dependencies.
func NewEnvelopeUseCase(
	txManager database.TxManager,
	envelopeRepo EnvelopeRepository,
	keyRing *cryptoDomain.KeyRing,
	cipherManager cryptoService.CipherManager,
	slicer envelopeService.Slicer,
	chunkSize int,
) EnvelopeUseCase {
	return &envelopeUseCase{
		txManager:     txManager,
		envelopeRepo:  envelopeRepo,
		keyRing:       keyRing,
		cipherManager: cipherManager,
		slicer:        slicer,
		chunkSize:     chunkSize,
	}
}
