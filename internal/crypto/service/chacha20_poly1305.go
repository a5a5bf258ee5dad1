package service

import (
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	"github.com/allisson/blockcrypt/internal/errors"
)

// ChaCha20Poly1305Cipher implements the Cipher interface using the
// ChaCha20-Poly1305 AEAD construction. It is particularly efficient on
// platforms without hardware AES acceleration.
type ChaCha20Poly1305Cipher struct {
	aead cipher.AEAD
	km   *cryptoDomain.KeyMaterial
	mode Mode
}

// NewChaCha20Poly1305 creates a ChaCha20-Poly1305 cipher bound to the given
// key material. The encryption key must be exactly 32 bytes.
//
// Returns ErrAlgorithmMismatch if the key material was resolved for a
// different cipher family.
func NewChaCha20Poly1305(km *cryptoDomain.KeyMaterial, mode Mode) (*ChaCha20Poly1305Cipher, error) {
	if family, ok := km.Algorithm().Family(); ok && family != cryptoDomain.FamilyChaCha20 {
		return nil, errors.Wrapf(cryptoDomain.ErrAlgorithmMismatch,
			"key material is %q, cipher is chacha20-poly1305", km.Algorithm())
	}

	aead, err := chacha20poly1305.New(km.EncryptionKey())
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, err.Error())
	}

	return &ChaCha20Poly1305Cipher{aead: aead, km: km, mode: mode}, nil
}

// Encrypt signs and seals the payload, returning nonce-prefixed ciphertext.
func (c *ChaCha20Poly1305Cipher) Encrypt(payload any) ([]byte, error) {
	return aeadEncrypt(c.aead, c.km, c.mode, payload)
}

// Decrypt opens the ciphertext and validates the embedded signature frame.
func (c *ChaCha20Poly1305Cipher) Decrypt(ciphertext []byte) (*cryptoDomain.DecryptedResult, error) {
	return aeadDecrypt(c.aead, c.km, c.mode, ciphertext)
}
