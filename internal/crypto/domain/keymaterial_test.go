package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/blockcrypt/internal/errors"
)

func TestNewKeyMaterial(t *testing.T) {
	t.Run("Success_ExactLength", func(t *testing.T) {
		raw := bytes.Repeat([]byte{0xAB}, 32)
		km, err := New(raw, Options{Algorithm: AES256CBC})
		require.NoError(t, err)

		assert.Equal(t, AES256CBC, km.Algorithm())
		assert.Equal(t, 32, km.KeyLength())
		assert.Equal(t, raw, km.EncryptionKey())

		_, hasMAC := km.MACKey()
		assert.False(t, hasMAC)
	})

	t.Run("Success_LongerMaterialSplitsMACKey", func(t *testing.T) {
		raw := append(bytes.Repeat([]byte{0x01}, 32), bytes.Repeat([]byte{0x02}, 32)...)
		km, err := New(raw, Options{Algorithm: AES256CBCHMACSHA512})
		require.NoError(t, err)

		assert.Equal(t, raw[:32], km.EncryptionKey())

		macKey, hasMAC := km.MACKey()
		require.True(t, hasMAC)
		assert.Equal(t, raw[32:], macKey)
		assert.Equal(t, macKey, km.SigningKey())
	})

	t.Run("Success_ShortMaterialIsStretched", func(t *testing.T) {
		raw := []byte("short-key")
		km1, err := New(raw, Options{Algorithm: AES256GCM})
		require.NoError(t, err)
		km2, err := New(raw, Options{Algorithm: AES256GCM})
		require.NoError(t, err)

		assert.Len(t, km1.EncryptionKey(), 32)
		// Stretching is deterministic for the same raw key and algorithm.
		assert.Equal(t, km1.EncryptionKey(), km2.EncryptionKey())

		// A different algorithm salt yields a different stretched key.
		km3, err := New(raw, Options{Algorithm: ChaCha20Poly1305})
		require.NoError(t, err)
		assert.NotEqual(t, km1.EncryptionKey(), km3.EncryptionKey())
	})

	t.Run("Success_CustomAlgorithmWithExplicitLength", func(t *testing.T) {
		km, err := New(bytes.Repeat([]byte{0x07}, 24), Options{Algorithm: "custom-24", KeyLength: 24})
		require.NoError(t, err)
		assert.Equal(t, 24, km.KeyLength())
	})

	t.Run("Error_UnknownAlgorithmWithoutLength", func(t *testing.T) {
		_, err := New(bytes.Repeat([]byte{0x00}, 24), Options{Algorithm: "des-ede3"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_EmptyKeyMaterial", func(t *testing.T) {
		_, err := New(nil, Options{Algorithm: AES256GCM})
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestWrap(t *testing.T) {
	raw := bytes.Repeat([]byte{0x11}, 32)

	t.Run("Idempotent_PassesThroughKeyMaterial", func(t *testing.T) {
		km, err := New(raw, Options{Algorithm: AES256GCM})
		require.NoError(t, err)

		wrapped, err := Wrap(km, Options{Algorithm: ChaCha20Poly1305})
		require.NoError(t, err)
		assert.Same(t, km, wrapped)
	})

	t.Run("ConstructsFromRawBytes", func(t *testing.T) {
		km, err := Wrap(raw, Options{Algorithm: AES256GCM})
		require.NoError(t, err)
		assert.Equal(t, raw, km.EncryptionKey())
	})

	t.Run("Error_UnsupportedType", func(t *testing.T) {
		_, err := Wrap("a string key", Options{Algorithm: AES256GCM})
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestKeyMaterial_SigningKey(t *testing.T) {
	raw := bytes.Repeat([]byte{0x42}, 32)
	km, err := New(raw, Options{Algorithm: AES256CBC})
	require.NoError(t, err)

	// Without a dedicated MAC key the signature key is the leading 8 bytes.
	assert.Equal(t, raw[:8], km.SigningKey())
}

func TestKeyMaterial_DeriveIV(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	km, err := New(raw, Options{Algorithm: AES256CBC})
	require.NoError(t, err)

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, km.DeriveIV(0), km.DeriveIV(0))
	})

	t.Run("FoldsKeyInHalf", func(t *testing.T) {
		iv := km.DeriveIV(0)
		require.Len(t, iv, 16)
		for i := range iv {
			assert.Equal(t, raw[i]^raw[i+16], iv[i])
		}
	})

	t.Run("TruncatesToSmallerTarget", func(t *testing.T) {
		full := km.DeriveIV(0)
		assert.Equal(t, full[:12], km.DeriveIV(12))
	})

	t.Run("ExtendsToLargerTarget", func(t *testing.T) {
		iv := km.DeriveIV(24)
		require.Len(t, iv, 24)
		folded := km.DeriveIV(0)
		assert.Equal(t, folded, iv[:16])
		for i := 16; i < 24; i++ {
			assert.Equal(t, folded[i%16]|0x80, iv[i])
		}
	})
}

func TestKeyMaterial_Close(t *testing.T) {
	raw := append(bytes.Repeat([]byte{0x01}, 32), bytes.Repeat([]byte{0x02}, 8)...)
	km, err := New(raw, Options{Algorithm: AES256GCM})
	require.NoError(t, err)

	km.Close()

	assert.Equal(t, make([]byte, 32), km.EncryptionKey())
	macKey, _ := km.MACKey()
	assert.Equal(t, make([]byte, 8), macKey)
}
