package commands

import (
	"encoding/json"
	"fmt"

	"github.com/allisson/blockcrypt/internal/app"
	"github.com/allisson/blockcrypt/internal/config"
	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
)

// RunDecrypt opens a chunked envelope and writes the decrypted JSON payload
// to the output. The envelope JSON is read from inputPath when set, otherwise
// from the reader (stdin by default). Integrity failures (checksum, Merkle
// levels, cipher authentication) abort with an error.
func RunDecrypt(ioTuple IOTuple, inputPath string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	data, err := readInput(ioTuple.Reader, inputPath)
	if err != nil {
		return err
	}

	var result envelopeDomain.BlockResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse envelope: %w", err)
	}

	transport, err := buildTransport(container, cfg.ChunkSize)
	if err != nil {
		return err
	}

	decrypted, err := transport.Decrypt(&result)
	if err != nil {
		return fmt.Errorf("failed to decrypt envelope: %w", err)
	}

	if _, err := ioTuple.Writer.Write(append(decrypted.Payload, '\n')); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	return nil
}
