package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
)

// testKey is a 32-byte key, base64-encoded.
const testKey = "key1:MDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDA="

func setupKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KEYS", testKey)
	t.Setenv("ACTIVE_KEY_ID", "key1")
}

func TestRunEncryptDecrypt(t *testing.T) {
	t.Run("round-trip", func(t *testing.T) {
		setupKeyEnv(t)

		payload := `{"message":"hello world","count":42}`

		var envelope bytes.Buffer
		err := RunEncrypt(IOTuple{Reader: strings.NewReader(payload), Writer: &envelope}, "")
		require.NoError(t, err)
		require.Contains(t, envelope.String(), `"blocks"`)
		require.Contains(t, envelope.String(), `"checksum"`)

		var output bytes.Buffer
		err = RunDecrypt(IOTuple{Reader: bytes.NewReader(envelope.Bytes()), Writer: &output}, "")
		require.NoError(t, err)
		require.JSONEq(t, payload, output.String())
	})

	t.Run("file-input", func(t *testing.T) {
		setupKeyEnv(t)

		payload := `{"message":"from file"}`
		inputPath := filepath.Join(t.TempDir(), "payload.json")
		require.NoError(t, os.WriteFile(inputPath, []byte(payload), 0o600))

		var envelope bytes.Buffer
		err := RunEncrypt(IOTuple{Writer: &envelope}, inputPath)
		require.NoError(t, err)

		var output bytes.Buffer
		err = RunDecrypt(IOTuple{Reader: bytes.NewReader(envelope.Bytes()), Writer: &output}, "")
		require.NoError(t, err)
		require.JSONEq(t, payload, output.String())
	})

	t.Run("invalid-json-input", func(t *testing.T) {
		setupKeyEnv(t)

		var envelope bytes.Buffer
		err := RunEncrypt(IOTuple{Reader: strings.NewReader("not json"), Writer: &envelope}, "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "input must be valid JSON")
	})

	t.Run("missing-keys", func(t *testing.T) {
		t.Setenv("KEYS", "")
		t.Setenv("ACTIVE_KEY_ID", "")

		var envelope bytes.Buffer
		err := RunEncrypt(IOTuple{Reader: strings.NewReader(`{"a":1}`), Writer: &envelope}, "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to load key ring")
	})

	t.Run("tampered-envelope", func(t *testing.T) {
		setupKeyEnv(t)

		var envelope bytes.Buffer
		err := RunEncrypt(IOTuple{Reader: strings.NewReader(`{"message":"secret"}`), Writer: &envelope}, "")
		require.NoError(t, err)

		var result envelopeDomain.BlockResult
		require.NoError(t, json.Unmarshal(envelope.Bytes(), &result))
		require.NotEmpty(t, result.Blocks)
		result.Blocks[0].Data = "tampered" + result.Blocks[0].Data
		tampered, err := json.Marshal(&result)
		require.NoError(t, err)

		var output bytes.Buffer
		err = RunDecrypt(IOTuple{Reader: bytes.NewReader(tampered), Writer: &output}, "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decrypt envelope")
	})

	t.Run("malformed-envelope", func(t *testing.T) {
		setupKeyEnv(t)

		var output bytes.Buffer
		err := RunDecrypt(IOTuple{Reader: strings.NewReader("not an envelope"), Writer: &output}, "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse envelope")
	})
}
