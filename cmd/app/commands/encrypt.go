package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/allisson/blockcrypt/internal/app"
	"github.com/allisson/blockcrypt/internal/config"
	envelopeService "github.com/allisson/blockcrypt/internal/envelope/service"
)

// RunEncrypt encrypts a JSON payload into a chunked envelope and writes the
// envelope JSON to the output. The payload is read from inputPath when set,
// otherwise from the reader (stdin by default). The active key from the
// configured key ring seals the payload.
func RunEncrypt(ioTuple IOTuple, inputPath string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	data, err := readInput(ioTuple.Reader, inputPath)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("input must be valid JSON")
	}

	transport, err := buildTransport(container, cfg.ChunkSize)
	if err != nil {
		return err
	}

	result, err := transport.Encrypt(json.RawMessage(data))
	if err != nil {
		return fmt.Errorf("failed to encrypt payload: %w", err)
	}

	encoder := json.NewEncoder(ioTuple.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	return nil
}

// readInput reads the payload from a file when inputPath is set, otherwise
// from the reader.
func readInput(reader io.Reader, inputPath string) ([]byte, error) {
	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// buildTransport assembles a chunked transport bound to the active key.
func buildTransport(container *app.Container, chunkSize int) (envelopeService.Transport, error) {
	ring, err := container.KeyRing()
	if err != nil {
		return nil, fmt.Errorf("failed to load key ring: %w", err)
	}

	key, ok := ring.Get(ring.ActiveKeyID())
	if !ok {
		return nil, fmt.Errorf("active key %q not found in key ring", ring.ActiveKeyID())
	}

	cipher, err := container.CipherManager().CreateCipher(key.Material)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	transport, err := envelopeService.NewChunkedTransport(cipher, container.Slicer(), chunkSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	return transport, nil
}
