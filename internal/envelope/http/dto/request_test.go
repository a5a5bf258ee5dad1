package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealEnvelopeRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := SealEnvelopeRequest{
			Payload: json.RawMessage(`{"msg":"hello"}`),
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_LargePayload", func(t *testing.T) {
		payload, err := json.Marshal(map[string]string{"data": string(make([]byte, 10000))})
		require.NoError(t, err)

		req := SealEnvelopeRequest{
			Payload: payload,
		}

		err = req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_EmptyPayload", func(t *testing.T) {
		req := SealEnvelopeRequest{}

		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "payload")
	})
}

func TestEncryptRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := EncryptRequest{
			Payload: json.RawMessage(`{"msg":"hello"}`),
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_EmptyPayload", func(t *testing.T) {
		req := EncryptRequest{}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestDecryptRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := DecryptRequest{
			Blocks: []ChunkRequest{
				{Index: 0, Hash: "hash0", Data: "data0"},
			},
			Checksum:   "checksum",
			MerkleRoot: []string{"root"},
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_NoMerkleRoot", func(t *testing.T) {
		req := DecryptRequest{
			Blocks: []ChunkRequest{
				{Index: 0, Hash: "hash0", Data: "data0"},
			},
			Checksum: "checksum",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_MissingBlocks", func(t *testing.T) {
		req := DecryptRequest{
			Checksum: "checksum",
		}

		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "blocks")
	})

	t.Run("Error_MissingChecksum", func(t *testing.T) {
		req := DecryptRequest{
			Blocks: []ChunkRequest{
				{Index: 0, Hash: "hash0", Data: "data0"},
			},
		}

		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "checksum")
	})

	t.Run("Error_BlankChecksum", func(t *testing.T) {
		req := DecryptRequest{
			Blocks: []ChunkRequest{
				{Index: 0, Hash: "hash0", Data: "data0"},
			},
			Checksum: "   ",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestDecryptRequest_ToBlockResult(t *testing.T) {
	req := DecryptRequest{
		Blocks: []ChunkRequest{
			{Index: 1, Hash: "hash1", Data: "data1"},
			{Index: 0, Hash: "hash0", Data: "data0"},
		},
		Checksum:   "checksum",
		MerkleRoot: []string{"level", "root"},
	}

	result := req.ToBlockResult()

	assert.Equal(t, "checksum", result.Checksum)
	assert.Equal(t, []string{"level", "root"}, result.MerkleRoot)
	// Chunk order is preserved; reassembly sorts by index downstream
	assert.Equal(t, uint(1), result.Blocks[0].Index)
	assert.Equal(t, "data0", result.Blocks[1].Data)
}
