package service

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/blockcrypt/internal/crypto/service"
	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	apperrors "github.com/allisson/blockcrypt/internal/errors"
)

func newTransport(t *testing.T, rawKey []byte, alg cryptoDomain.Algorithm, chunkSize int) *ChunkedTransport {
	t.Helper()

	km, err := cryptoDomain.New(rawKey, cryptoDomain.Options{Algorithm: alg})
	require.NoError(t, err)

	cipher, err := cryptoService.NewCipherManager().CreateCipher(km)
	require.NoError(t, err)

	transport, err := NewChunkedTransport(cipher, NewSlicer(), chunkSize)
	require.NoError(t, err)
	return transport
}

func TestChunkedTransport_RoundTrip(t *testing.T) {
	testCases := []struct {
		name      string
		algorithm cryptoDomain.Algorithm
		keySize   int
	}{
		{name: "AES256CBC", algorithm: cryptoDomain.AES256CBC, keySize: 32},
		{name: "AES256GCM", algorithm: cryptoDomain.AES256GCM, keySize: 32},
		{name: "ChaCha20Poly1305", algorithm: cryptoDomain.ChaCha20Poly1305, keySize: 32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transport := newTransport(t, make([]byte, tc.keySize), tc.algorithm, 64)

			payload := map[string]string{"msg": "hello", "padding": strings.Repeat("z", 500)}
			result, err := transport.Encrypt(payload)
			require.NoError(t, err)
			require.NotEmpty(t, result.Blocks)
			require.NotEmpty(t, result.Checksum)
			require.NotEmpty(t, result.MerkleRoot)
			assert.False(t, result.Timestamp.IsZero())

			opened, err := transport.Decrypt(result)
			require.NoError(t, err)
			assert.Equal(t, result.Checksum, opened.OriginalChecksum)

			var decoded map[string]string
			require.NoError(t, opened.Unmarshal(&decoded))
			assert.Equal(t, payload, decoded)
		})
	}
}

func TestChunkedTransport_ZeroKeyRoundTrip(t *testing.T) {
	transport := newTransport(t, make([]byte, 32), cryptoDomain.AES256CBC, 0)

	result, err := transport.Encrypt(map[string]string{"msg": "hello"})
	require.NoError(t, err)

	opened, err := transport.Decrypt(result)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, opened.Unmarshal(&decoded))
	assert.Equal(t, "hello", decoded["msg"])

	t.Run("CorruptedFirstChunk", func(t *testing.T) {
		corrupted := *result
		corrupted.Blocks = append([]envelopeDomain.Chunk(nil), result.Blocks...)

		data := []byte(corrupted.Blocks[0].Data)
		data[0] ^= 0x01
		corrupted.Blocks[0].Data = string(data)

		opened, err := transport.Decrypt(&corrupted)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrIntegrity)
		assert.Nil(t, opened)
	})
}

func TestChunkedTransport_ShuffledBlocks(t *testing.T) {
	transport := newTransport(t, make([]byte, 32), cryptoDomain.AES256GCM, 32)

	result, err := transport.Encrypt(map[string]string{"msg": strings.Repeat("hello ", 100)})
	require.NoError(t, err)
	require.Greater(t, len(result.Blocks), 2)

	rand.Shuffle(len(result.Blocks), func(i, j int) {
		result.Blocks[i], result.Blocks[j] = result.Blocks[j], result.Blocks[i]
	})

	opened, err := transport.Decrypt(result)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, opened.Unmarshal(&decoded))
	assert.Equal(t, strings.Repeat("hello ", 100), decoded["msg"])
}

func TestChunkedTransport_MerkleVerification(t *testing.T) {
	transport := newTransport(t, make([]byte, 32), cryptoDomain.AES256GCM, 64)

	result, err := transport.Encrypt(map[string]string{"msg": strings.Repeat("data", 100)})
	require.NoError(t, err)
	require.NotEmpty(t, result.MerkleRoot)

	t.Run("TamperedRoot", func(t *testing.T) {
		tampered := *result
		tampered.MerkleRoot = append([]string(nil), result.MerkleRoot...)
		tampered.MerkleRoot[len(tampered.MerkleRoot)-1] = strings.Repeat("0", 64)

		opened, err := transport.Decrypt(&tampered)
		assert.ErrorIs(t, err, envelopeDomain.ErrMerkleMismatch)
		assert.Nil(t, opened)
	})

	t.Run("MissingLevelsSkipsMerkleCheck", func(t *testing.T) {
		trimmed := *result
		trimmed.MerkleRoot = nil

		opened, err := transport.Decrypt(&trimmed)
		require.NoError(t, err)
		assert.NotNil(t, opened)
	})
}

func TestChunkedTransport_Construction(t *testing.T) {
	t.Run("NilCipher", func(t *testing.T) {
		transport, err := NewChunkedTransport(nil, NewSlicer(), 512)
		assert.ErrorIs(t, err, cryptoDomain.ErrConfiguration)
		assert.Nil(t, transport)
	})

	t.Run("NilSlicer", func(t *testing.T) {
		km, err := cryptoDomain.New(make([]byte, 32), cryptoDomain.Options{
			Algorithm: cryptoDomain.AES256GCM,
		})
		require.NoError(t, err)
		cipher, err := cryptoService.NewCipherManager().CreateCipher(km)
		require.NoError(t, err)

		transport, err := NewChunkedTransport(cipher, nil, 512)
		assert.ErrorIs(t, err, cryptoDomain.ErrConfiguration)
		assert.Nil(t, transport)
	})

	t.Run("NilBlockResult", func(t *testing.T) {
		transport := newTransport(t, make([]byte, 32), cryptoDomain.AES256GCM, 512)
		opened, err := transport.Decrypt(nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrConfiguration)
		assert.Nil(t, opened)
	})
}

func TestChunkedTransport_InvalidBase64Content(t *testing.T) {
	transport := newTransport(t, make([]byte, 32), cryptoDomain.AES256GCM, 512)
	slicer := NewSlicer()

	sliced, err := slicer.Slice("not!valid!base64!!", 512)
	require.NoError(t, err)

	opened, err := transport.Decrypt(&envelopeDomain.BlockResult{
		Blocks:     sliced.Chunks,
		Checksum:   sliced.Checksum,
		MerkleRoot: sliced.MerkleLevels,
	})
	assert.ErrorIs(t, err, cryptoDomain.ErrMalformedPayload)
	assert.Nil(t, opened)
}
