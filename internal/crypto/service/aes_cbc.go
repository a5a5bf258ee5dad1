package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"time"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	"github.com/allisson/blockcrypt/internal/errors"
)

// AESCBCCipher implements the Cipher interface using AES in CBC mode.
//
// CBC provides no authentication on its own, so the HMAC-SHA512 signature
// inside the encrypted frame is the sole tamper check for this family. A
// fresh random IV is generated per encryption and prepended to the
// ciphertext. In ModeLegacyIV the IV is derived deterministically from the
// key material instead; that mode is decrypt-only.
type AESCBCCipher struct {
	block cipher.Block
	km    *cryptoDomain.KeyMaterial
	mode  Mode
}

// NewAESCBC creates an AES-CBC cipher bound to the given key material.
//
// Returns ErrAlgorithmMismatch if the key material was resolved for a
// different cipher family, or ErrConfiguration if the encryption key is not
// a valid AES key length.
func NewAESCBC(km *cryptoDomain.KeyMaterial, mode Mode) (*AESCBCCipher, error) {
	if family, ok := km.Algorithm().Family(); ok && family != cryptoDomain.FamilyAESCBC {
		return nil, errors.Wrapf(cryptoDomain.ErrAlgorithmMismatch,
			"key material is %q, cipher is aes-cbc", km.Algorithm())
	}

	block, err := aes.NewCipher(km.EncryptionKey())
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, err.Error())
	}

	return &AESCBCCipher{block: block, km: km, mode: mode}, nil
}

// Encrypt signs and encrypts the payload, returning IV-prefixed ciphertext.
func (a *AESCBCCipher) Encrypt(payload any) ([]byte, error) {
	if a.mode == ModeLegacyIV {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, "legacy mode is decrypt-only")
	}

	payloadBytes, err := marshalPayload(payload)
	if err != nil {
		return nil, err
	}

	frame := encodeFrame(sign(payloadBytes, a.km), payloadBytes)
	padded := padPKCS7(frame, aes.BlockSize)
	defer cryptoDomain.Zero(padded)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrCryptographic, "iv generation failed")
	}

	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(a.block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return out, nil
}

// Decrypt decrypts the ciphertext and validates the embedded signature frame.
func (a *AESCBCCipher) Decrypt(ciphertext []byte) (*cryptoDomain.DecryptedResult, error) {
	var iv, body []byte
	switch a.mode {
	case ModeLegacyIV:
		iv = a.km.DeriveIV(aes.BlockSize)
		body = ciphertext
	default:
		if len(ciphertext) < aes.BlockSize {
			return nil, cryptoDomain.ErrCryptographic
		}
		iv = ciphertext[:aes.BlockSize]
		body = ciphertext[aes.BlockSize:]
	}

	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return nil, cryptoDomain.ErrCryptographic
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(a.block, iv).CryptBlocks(plaintext, body)
	defer cryptoDomain.Zero(plaintext)

	frame, err := unpadPKCS7(plaintext, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	signature, payloadBytes, err := decodeFrame(frame)
	if err != nil {
		return nil, err
	}

	computed, err := verifyFrame(signature, payloadBytes, a.km)
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

// padPKCS7 appends PKCS#7 padding up to the block size.
func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpadPKCS7 validates and strips PKCS#7 padding.
func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, cryptoDomain.ErrCryptographic
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, cryptoDomain.ErrCryptographic
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, cryptoDomain.ErrCryptographic
		}
	}
	return data[:len(data)-n], nil
}
