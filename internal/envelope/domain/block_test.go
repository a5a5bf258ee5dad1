package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockResult_MarshalJSON(t *testing.T) {
	sealed := time.Date(2026, 8, 24, 10, 30, 0, 123456789, time.UTC)
	result := BlockResult{
		Blocks: []Chunk{
			{Index: 0, Hash: "aaaa", Data: "Zmly"},
			{Index: 1, Hash: "bbbb", Data: "c3Q="},
		},
		Checksum:   "cafef00d",
		MerkleRoot: []string{"aaaa", "bbbb", "cccc"},
		Timestamp:  sealed,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	// The artifact carries the timestamp as Unix epoch seconds, not RFC3339.
	var wire struct {
		Blocks     []Chunk  `json:"blocks"`
		Checksum   string   `json:"checksum"`
		MerkleRoot []string `json:"merkleRoot"`
		Timestamp  int64    `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, sealed.Unix(), wire.Timestamp)
	assert.Equal(t, result.Blocks, wire.Blocks)
	assert.Equal(t, result.Checksum, wire.Checksum)
	assert.Equal(t, result.MerkleRoot, wire.MerkleRoot)
	assert.NotContains(t, string(data), "2026-08-24T")
}

func TestBlockResult_UnmarshalJSON(t *testing.T) {
	raw := `{
		"blocks": [{"index": 0, "hash": "aaaa", "data": "Zmly"}],
		"checksum": "cafef00d",
		"merkleRoot": ["aaaa"],
		"timestamp": 1787999400
	}`

	var result BlockResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))

	assert.Equal(t, time.Unix(1787999400, 0).UTC(), result.Timestamp)
	assert.Equal(t, "cafef00d", result.Checksum)
	assert.Len(t, result.Blocks, 1)
}

func TestBlockResult_JSONRoundTrip(t *testing.T) {
	original := BlockResult{
		Blocks:     []Chunk{{Index: 0, Hash: "aaaa", Data: "Zmly"}},
		Checksum:   "cafef00d",
		MerkleRoot: []string{"aaaa"},
		Timestamp:  time.Now().UTC().Truncate(time.Second),
	}

	data, err := json.Marshal(&original)
	require.NoError(t, err)

	var decoded BlockResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
