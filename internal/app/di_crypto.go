package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/blockcrypt/internal/crypto/service"
)

// cryptoContainer holds the crypto components of the DI container.
type cryptoContainer struct {
	kmsService    cryptoService.KMSService
	keyRing       *cryptoDomain.KeyRing
	cipherManager cryptoService.CipherManager

	kmsServiceInit    sync.Once
	keyRingInit       sync.Once
	cipherManagerInit sync.Once
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// CipherManager returns the cipher manager service.
func (c *Container) CipherManager() cryptoService.CipherManager {
	c.cipherManagerInit.Do(func() {
		c.cipherManager = cryptoService.NewCipherManager()
	})
	return c.cipherManager
}

// KeyRing returns the key ring loaded from environment variables.
// When KMS_KEY_URI is configured, KEYS entries are treated as KMS-encrypted
// and unwrapped before the ring is built.
func (c *Container) KeyRing() (*cryptoDomain.KeyRing, error) {
	c.keyRingInit.Do(func() {
		ring, err := c.initKeyRing()
		if err != nil {
			c.initErrors["keyRing"] = err
			return
		}
		c.keyRing = ring
	})
	if storedErr, exists := c.initErrors["keyRing"]; exists {
		return nil, storedErr
	}
	return c.keyRing, nil
}

// initKeyRing loads the key ring, unwrapping KMS-encrypted entries if configured.
func (c *Container) initKeyRing() (*cryptoDomain.KeyRing, error) {
	algorithm := cryptoDomain.Algorithm(c.config.Algorithm)

	if c.config.KMSKeyURI == "" {
		ring, err := cryptoDomain.LoadKeyRingFromEnv(algorithm)
		if err != nil {
			return nil, fmt.Errorf("failed to load key ring: %w", err)
		}
		return ring, nil
	}

	raw, err := c.decryptKeyRingEntries(context.Background(), os.Getenv("KEYS"))
	if err != nil {
		return nil, err
	}

	ring, err := cryptoDomain.NewKeyRing(raw, os.Getenv("ACTIVE_KEY_ID"), algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to load key ring: %w", err)
	}
	return ring, nil
}

// decryptKeyRingEntries unwraps each "id:base64ciphertext" entry with the
// configured KMS keeper and rebuilds the plain "id:base64key" list.
func (c *Container) decryptKeyRingEntries(ctx context.Context, raw string) (string, error) {
	keeper, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
	if err != nil {
		return "", fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			c.Logger().Warn("failed to close KMS keeper", "error", closeErr)
		}
	}()

	entries := strings.Split(raw, ",")
	decrypted := make([]string, 0, len(entries))

	for _, entry := range entries {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("invalid KEYS entry: %q", entry)
		}

		ciphertext, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return "", fmt.Errorf("invalid base64 in KEYS entry %q: %w", parts[0], err)
		}

		keyBytes, err := keeper.Decrypt(ctx, ciphertext)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt KEYS entry %q: %w", parts[0], err)
		}

		decrypted = append(decrypted, parts[0]+":"+base64.StdEncoding.EncodeToString(keyBytes))
		cryptoDomain.Zero(keyBytes)
	}

	return strings.Join(decrypted, ","), nil
}
