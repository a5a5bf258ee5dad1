package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/blockcrypt/internal/crypto/service"
)

// RunKeygen generates a cryptographically secure 32-byte envelope key.
// Key material is zeroed from memory after encoding. If keyID is empty,
// generates a default ID in format "envelope-key-YYYY-MM-DD".
//
// When kmsKeyURI is set, the generated key is encrypted with the KMS keeper
// before output and KMS_KEY_URI is included in the printed configuration.
// For local development, use kmsKeyURI="base64key://<32-byte-base64-key>".
//
// Output format:
//   - KEYS="<keyID>:<base64-encoded-key-or-kms-ciphertext>"
//   - ACTIVE_KEY_ID="<keyID>"
func RunKeygen(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	out io.Writer,
	keyID string,
	kmsKeyURI string,
) error {
	// Generate default key ID if not provided
	if keyID == "" {
		keyID = fmt.Sprintf("envelope-key-%s", time.Now().Format("2006-01-02"))
	}

	// Generate a cryptographically secure 32-byte key
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	encodedKey := base64.StdEncoding.EncodeToString(key)

	if kmsKeyURI != "" {
		keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
			}
		}()

		ciphertext, err := keeper.Encrypt(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to encrypt key with KMS: %w", err)
		}
		encodedKey = base64.StdEncoding.EncodeToString(ciphertext)

		fmt.Fprintln(out, "# Envelope Key Configuration (KMS Mode)")
		fmt.Fprintln(out, "# Copy these environment variables to your .env file or secrets manager")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "KMS_KEY_URI=%q\n", kmsKeyURI)
	} else {
		fmt.Fprintln(out, "# Envelope Key Configuration")
		fmt.Fprintln(out, "# Copy these environment variables to your .env file or secrets manager")
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "KEYS=%q\n", fmt.Sprintf("%s:%s", keyID, encodedKey))
	fmt.Fprintf(out, "ACTIVE_KEY_ID=%q\n", keyID)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "# For key rotation, append new keys and point ACTIVE_KEY_ID at the newest:")
	fmt.Fprintf(out, "# KEYS=\"%s:%s,new-key:base64-encoded-key\"\n", keyID, encodedKey)
	fmt.Fprintln(out, "# ACTIVE_KEY_ID=\"new-key\"")

	return nil
}
