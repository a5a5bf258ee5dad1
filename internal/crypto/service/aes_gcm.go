package service

import (
	"crypto/aes"
	"crypto/cipher"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	"github.com/allisson/blockcrypt/internal/errors"
)

// AESGCMCipher implements the Cipher interface using AES in Galois/Counter
// Mode. GCM authenticates the whole frame, so tampering is caught by the
// AEAD tag before the embedded HMAC signature is even checked.
//
// A unique 12-byte nonce is generated per encryption and prepended to the
// ciphertext. The cipher is stateless and safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
	km   *cryptoDomain.KeyMaterial
	mode Mode
}

// NewAESGCM creates an AES-GCM cipher bound to the given key material.
//
// Returns ErrAlgorithmMismatch if the key material was resolved for a
// different cipher family, or ErrConfiguration if the encryption key is not
// a valid AES key length.
func NewAESGCM(km *cryptoDomain.KeyMaterial, mode Mode) (*AESGCMCipher, error) {
	if family, ok := km.Algorithm().Family(); ok && family != cryptoDomain.FamilyAESGCM {
		return nil, errors.Wrapf(cryptoDomain.ErrAlgorithmMismatch,
			"key material is %q, cipher is aes-gcm", km.Algorithm())
	}

	block, err := aes.NewCipher(km.EncryptionKey())
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, err.Error())
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, err.Error())
	}

	return &AESGCMCipher{aead: aead, km: km, mode: mode}, nil
}

// Encrypt signs and seals the payload, returning nonce-prefixed ciphertext.
func (a *AESGCMCipher) Encrypt(payload any) ([]byte, error) {
	return aeadEncrypt(a.aead, a.km, a.mode, payload)
}

// Decrypt opens the ciphertext and validates the embedded signature frame.
func (a *AESGCMCipher) Decrypt(ciphertext []byte) (*cryptoDomain.DecryptedResult, error) {
	return aeadDecrypt(a.aead, a.km, a.mode, ciphertext)
}
