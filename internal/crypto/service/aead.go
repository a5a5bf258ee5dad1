package service

import (
	"crypto/cipher"
	"crypto/rand"
	"time"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
)

// aeadEncrypt signs and seals the payload with the given AEAD, returning
// nonce-prefixed ciphertext. Shared by the AES-GCM and ChaCha20-Poly1305
// ciphers, which differ only in primitive construction.
func aeadEncrypt(aead cipher.AEAD, km *cryptoDomain.KeyMaterial, mode Mode, payload any) ([]byte, error) {
	if mode == ModeLegacyIV {
		return nil, cryptoDomain.ErrConfiguration
	}

	payloadBytes, err := marshalPayload(payload)
	if err != nil {
		return nil, err
	}

	frame := encodeFrame(sign(payloadBytes, km), payloadBytes)
	defer cryptoDomain.Zero(frame)

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, cryptoDomain.ErrCryptographic
	}

	return aead.Seal(nonce, nonce, frame, nil), nil
}

// aeadDecrypt opens nonce-prefixed ciphertext and validates the signature
// frame. In ModeLegacyIV the nonce is derived from the key material and the
// whole input is treated as ciphertext.
func aeadDecrypt(aead cipher.AEAD, km *cryptoDomain.KeyMaterial, mode Mode, ciphertext []byte) (*cryptoDomain.DecryptedResult, error) {
	var nonce, body []byte
	switch mode {
	case ModeLegacyIV:
		nonce = km.DeriveIV(aead.NonceSize())
		body = ciphertext
	default:
		if len(ciphertext) < aead.NonceSize() {
			return nil, cryptoDomain.ErrCryptographic
		}
		nonce = ciphertext[:aead.NonceSize()]
		body = ciphertext[aead.NonceSize():]
	}

	frame, err := aead.Open(nil, nonce, body, nil)
	if err != nil {
		return nil, cryptoDomain.ErrCryptographic
	}
	defer cryptoDomain.Zero(frame)

	signature, payloadBytes, err := decodeFrame(frame)
	if err != nil {
		return nil, err
	}

	computed, err := verifyFrame(signature, payloadBytes, km)
	if err != nil {
		return nil, err
	}

	payload, err := decodePayload(payloadBytes)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.DecryptedResult{
		Payload:   payload,
		Signature: computed,
		Timestamp: time.Now().UTC(),
	}, nil
}
