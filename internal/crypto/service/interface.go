// Package service implements authenticated encryption over the supported
// cipher families (AES-CBC, AES-GCM, ChaCha20-Poly1305).
//
// Every cipher signs the JSON payload with HMAC-SHA512, frames the signature
// with the payload, and encrypts the frame, so tampering is detected both by
// the cipher mode (for AEAD) and by the embedded signature. Cipher instances
// are immutable after construction and safe for concurrent use.
package service

import (
	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
)

// Mode selects how a cipher sources its IV/nonce on decrypt.
type Mode int

const (
	// ModeStandard expects a fresh random nonce prepended to each ciphertext.
	ModeStandard Mode = iota

	// ModeLegacyIV derives the IV deterministically from the key material.
	// Kept only to decrypt ciphertext issued before nonces were transmitted;
	// ciphers in this mode refuse to encrypt.
	ModeLegacyIV
)

// Cipher defines the interface for authenticated payload encryption.
type Cipher interface {
	// Encrypt serializes the payload to JSON, signs it, frames signature and
	// payload together, and encrypts the frame. Returns the ciphertext with
	// the nonce/IV prepended.
	Encrypt(payload any) ([]byte, error)

	// Decrypt reverses Encrypt: decrypts, validates the signature frame, and
	// decodes the payload. Integrity failures surface as domain errors.
	Decrypt(ciphertext []byte) (*cryptoDomain.DecryptedResult, error)
}

// CipherManager defines the interface for creating cipher instances.
type CipherManager interface {
	// CreateCipher creates a standard-mode cipher for the key material's algorithm.
	CreateCipher(km *cryptoDomain.KeyMaterial) (Cipher, error)

	// CreateCipherWithMode creates a cipher in the given mode.
	CreateCipherWithMode(km *cryptoDomain.KeyMaterial, mode Mode) (Cipher, error)
}
