// Package domain defines the core cryptographic domain models for the
// authenticated chunked transport.
//
// KeyMaterial resolves raw symmetric key bytes into an encryption key, an
// optional MAC key, and a deterministic IV derivation used only for decrypting
// previously issued ciphertext. Instances are immutable after construction and
// safe to share across an unbounded number of concurrent cipher calls.
package domain

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"

	"github.com/allisson/blockcrypt/internal/errors"
)

const (
	// signingKeyLength is the number of leading encryption-key bytes used as
	// the HMAC key when the key material carries no dedicated MAC key.
	signingKeyLength = 8

	// stretchIterations is the PBKDF2 iteration count used to stretch key
	// material shorter than the algorithm's required length.
	stretchIterations = 4096
)

// Options configures KeyMaterial construction.
type Options struct {
	// Algorithm selects one of the built-in algorithm identifiers.
	Algorithm Algorithm
	// KeyLength overrides the required encryption key length in bytes.
	// Required for algorithms outside the built-in set.
	KeyLength int
}

// KeyMaterial holds the derived byte sequences that parameterize a symmetric
// algorithm. It is immutable once constructed and owned by the cipher that
// wraps it.
type KeyMaterial struct {
	algorithm     Algorithm
	keyLength     int
	encryptionKey []byte
	macKey        []byte
}

// New resolves raw key bytes into KeyMaterial for the given options.
//
// Key material longer than the required length is split: the leading bytes
// become the encryption key and the remainder becomes the MAC key. Material
// shorter than required is stretched to the exact length with PBKDF2-SHA512
// using the algorithm identifier as salt, so the same short key always
// resolves to the same encryption key.
//
// Returns ErrUnsupportedAlgorithm if the algorithm is not built-in and no
// explicit KeyLength is given, or ErrConfiguration for empty key material.
func New(raw []byte, opts Options) (*KeyMaterial, error) {
	keyLength := opts.KeyLength
	if keyLength <= 0 {
		resolved, ok := opts.Algorithm.KeyLength()
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", opts.Algorithm)
		}
		keyLength = resolved
	}
	if keyLength < 2 {
		return nil, errors.Wrapf(ErrConfiguration, "key length %d is too short", keyLength)
	}
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "empty key material")
	}

	km := &KeyMaterial{
		algorithm: opts.Algorithm,
		keyLength: keyLength,
	}

	switch {
	case len(raw) > keyLength:
		km.encryptionKey = append([]byte(nil), raw[:keyLength]...)
		km.macKey = append([]byte(nil), raw[keyLength:]...)
	case len(raw) == keyLength:
		km.encryptionKey = append([]byte(nil), raw...)
	default:
		// Short keys are stretched rather than silently accepted or rejected.
		salt := []byte("blockcrypt/" + string(opts.Algorithm))
		km.encryptionKey = pbkdf2.Key(raw, salt, stretchIterations, keyLength, sha512.New)
	}

	return km, nil
}

// Wrap returns the input unchanged if it already is a *KeyMaterial, and
// constructs new KeyMaterial when given raw bytes.
func Wrap(material any, opts Options) (*KeyMaterial, error) {
	switch v := material.(type) {
	case *KeyMaterial:
		return v, nil
	case []byte:
		return New(v, opts)
	default:
		return nil, errors.Wrapf(ErrConfiguration, "cannot wrap %T as key material", material)
	}
}

// Algorithm returns the algorithm identifier the material was resolved for.
func (k *KeyMaterial) Algorithm() Algorithm {
	return k.algorithm
}

// KeyLength returns the resolved encryption key length in bytes.
func (k *KeyMaterial) KeyLength() int {
	return k.keyLength
}

// EncryptionKey returns the encryption key. Callers must treat the returned
// slice as read-only.
func (k *KeyMaterial) EncryptionKey() []byte {
	return k.encryptionKey
}

// MACKey returns the dedicated MAC key and whether one is present. A MAC key
// exists only when the raw material was longer than the required key length.
func (k *KeyMaterial) MACKey() ([]byte, bool) {
	if len(k.macKey) == 0 {
		return nil, false
	}
	return k.macKey, true
}

// SigningKey returns the HMAC key used for payload signatures: the dedicated
// MAC key when present, otherwise the leading bytes of the encryption key.
func (k *KeyMaterial) SigningKey() []byte {
	if len(k.macKey) > 0 {
		return k.macKey
	}
	n := min(signingKeyLength, len(k.encryptionKey))
	return k.encryptionKey[:n]
}

// DeriveIV derives an initialization vector from the key material alone by
// XOR-folding the encryption key in half. A smaller target length truncates
// the folded bytes; a larger one extends them by cycling the folded bytes
// OR'd with 0x80.
//
// The output is a pure function of the key, not a per-message nonce. New
// ciphertext always carries a fresh random nonce; this derivation exists only
// to decrypt ciphertext issued before nonces were transmitted.
func (k *KeyMaterial) DeriveIV(targetLength int) []byte {
	half := k.keyLength / 2
	folded := make([]byte, half)
	for i := range folded {
		folded[i] = k.encryptionKey[i] ^ k.encryptionKey[i+half]
	}

	if targetLength <= 0 || targetLength == half {
		return folded
	}
	if targetLength < half {
		return folded[:targetLength]
	}

	iv := make([]byte, targetLength)
	copy(iv, folded)
	for i := half; i < targetLength; i++ {
		iv[i] = folded[i%half] | 0x80
	}
	return iv
}

// Close zeroes the key material. The KeyMaterial must not be used afterwards.
func (k *KeyMaterial) Close() {
	Zero(k.encryptionKey)
	Zero(k.macKey)
}
