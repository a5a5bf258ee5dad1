package domain

import (
	"github.com/allisson/blockcrypt/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer. Integrity
// failures deliberately carry no detail about which comparison failed.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is
	// not supported and no explicit key length was supplied for it.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrConfiguration indicates an invalid cipher or transport configuration
	// detected at construction, before any cryptographic work happens.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrConfiguration = errors.Wrap(errors.ErrInvalidInput, "invalid configuration")

	// ErrAlgorithmMismatch indicates the cipher family requested at
	// construction does not match the family implied by the key material.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrAlgorithmMismatch = errors.Wrap(errors.ErrInvalidInput, "algorithm family mismatch")

	// ErrSerialization indicates the payload could not be encoded as JSON
	// before encryption. No cipher work happens after this failure.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrSerialization = errors.Wrap(errors.ErrInvalidInput, "payload serialization failed")

	// ErrDeserialization indicates the decrypted payload is not valid JSON.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDeserialization = errors.Wrap(errors.ErrIntegrity, "payload deserialization failed")

	// ErrEnvironmentUnsupported indicates the required cipher primitive is not
	// available on the current host. The same call may succeed elsewhere.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrEnvironmentUnsupported = errors.Wrap(errors.ErrUnsupported, "cipher primitive not available")

	// ErrCryptographic wraps failures raised by the cipher primitive itself
	// (bad padding, AEAD open failure, invalid ciphertext length).
	//
	// The specific cause is not disclosed to prevent information leakage.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrCryptographic = errors.Wrap(errors.ErrIntegrity, "cipher operation failed")

	// ErrTamperedData indicates the embedded HMAC signature does not match the
	// recomputed one. Deterministic; never retried.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrTamperedData = errors.Wrap(errors.ErrIntegrity, "signature verification failed")

	// ErrMalformedPayload indicates the decrypted bytes do not contain a valid
	// signature frame in either the length-prefixed or legacy format.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrMalformedPayload = errors.Wrap(errors.ErrIntegrity, "malformed framed payload")
)
