package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" //nolint:gosec // required for compatibility with legacy key derivation
	"time"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	"github.com/allisson/blockcrypt/internal/errors"
)

// LegacyPasswordCipher decrypts ciphertext produced by the retired
// password-based mode, which derived both key and IV from the password with
// an MD5 digest chain (OpenSSL EVP_BytesToKey, one iteration, no salt) and
// transmitted no IV.
//
// The mode is kept only so previously issued ciphertext stays readable; the
// cipher refuses to encrypt.
type LegacyPasswordCipher struct {
	block cipher.Block
	iv    []byte
	km    *cryptoDomain.KeyMaterial
}

// NewLegacyPasswordCipher derives AES key and IV from the password and binds
// them to a decrypt-only CBC cipher for the given algorithm.
func NewLegacyPasswordCipher(password []byte, alg cryptoDomain.Algorithm) (*LegacyPasswordCipher, error) {
	if family, ok := alg.Family(); !ok || family != cryptoDomain.FamilyAESCBC {
		return nil, errors.Wrapf(cryptoDomain.ErrAlgorithmMismatch,
			"legacy password mode supports only aes-cbc algorithms, got %q", alg)
	}
	keyLength, _ := alg.KeyLength()

	derived := evpBytesToKey(password, keyLength+aes.BlockSize)
	key := derived[:keyLength]
	iv := derived[keyLength:]

	km, err := cryptoDomain.New(key, cryptoDomain.Options{Algorithm: alg})
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, err.Error())
	}

	return &LegacyPasswordCipher{block: block, iv: iv, km: km}, nil
}

// Encrypt always fails: the password mode is decrypt-only.
func (l *LegacyPasswordCipher) Encrypt(payload any) ([]byte, error) {
	return nil, errors.Wrap(cryptoDomain.ErrConfiguration, "legacy password mode is decrypt-only")
}

// Decrypt decrypts legacy ciphertext and validates the embedded signature frame.
func (l *LegacyPasswordCipher) Decrypt(ciphertext []byte) (*cryptoDomain.DecryptedResult, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, cryptoDomain.ErrCryptographic
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(l.block, l.iv).CryptBlocks(plaintext, ciphertext)
	defer cryptoDomain.Zero(plaintext)

	frame, err := unpadPKCS7(plaintext, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	signature, payloadBytes, err := decodeFrame(frame)
	if err != nil {
		return nil, err
	}

	computed, err := verifyFrame(signature, payloadBytes, l.km)
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

// evpBytesToKey reproduces OpenSSL's EVP_BytesToKey with MD5, one iteration
// and no salt: D1 = MD5(password), Dn = MD5(Dn-1 || password), concatenated
// until n bytes are available.
func evpBytesToKey(password []byte, n int) []byte {
	var derived, prev []byte
	for len(derived) < n {
		h := md5.New() //nolint:gosec // legacy compatibility
		h.Write(prev)
		h.Write(password)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:n]
}
