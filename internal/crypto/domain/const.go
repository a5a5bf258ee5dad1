package domain

// Algorithm identifies a symmetric encryption algorithm and mode.
//
// The identifiers follow the conventional "cipher-keybits-mode" naming so they
// can be persisted alongside ciphertext and resolved back to a cipher family
// and key length on decrypt.
type Algorithm string

const (
	// AES128CBC is AES with a 128-bit key in CBC mode, authenticated with an
	// HMAC-SHA512 signature inside the encrypted frame.
	AES128CBC Algorithm = "aes-128-cbc"

	// AES128GCM is AES with a 128-bit key in Galois/Counter Mode (AEAD).
	AES128GCM Algorithm = "aes-128-gcm"

	// AES256CBC is AES with a 256-bit key in CBC mode, authenticated with an
	// HMAC-SHA512 signature inside the encrypted frame.
	AES256CBC Algorithm = "aes-256-cbc"

	// AES256GCM is AES with a 256-bit key in Galois/Counter Mode (AEAD).
	AES256GCM Algorithm = "aes-256-gcm"

	// AES256CBCHMACSHA512 is AES-256-CBC with a dedicated HMAC-SHA512 key.
	// Key material longer than the 32-byte encryption key carries the MAC key
	// in its trailing bytes.
	AES256CBCHMACSHA512 Algorithm = "aes-256-cbc-hmac-sha512"

	// ChaCha20Poly1305 is the ChaCha20-Poly1305 AEAD construction.
	ChaCha20Poly1305 Algorithm = "chacha20-poly1305"
)

// Family groups algorithms that share an encryption primitive. The family is
// resolved once at cipher construction and never re-checked per call.
type Family string

const (
	// FamilyAESCBC covers the CBC block modes.
	FamilyAESCBC Family = "aes-cbc"

	// FamilyAESGCM covers the AES AEAD modes.
	FamilyAESGCM Family = "aes-gcm"

	// FamilyChaCha20 covers ChaCha20-Poly1305.
	FamilyChaCha20 Family = "chacha20"
)

// keyLengths maps each supported algorithm to its required encryption key
// length in bytes. Raw key material beyond this length becomes the MAC key.
var keyLengths = map[Algorithm]int{
	AES128CBC:           16,
	AES128GCM:           16,
	AES256CBC:           32,
	AES256GCM:           32,
	AES256CBCHMACSHA512: 32,
	ChaCha20Poly1305:    32,
}

// families maps each supported algorithm to its cipher family.
var families = map[Algorithm]Family{
	AES128CBC:           FamilyAESCBC,
	AES256CBC:           FamilyAESCBC,
	AES256CBCHMACSHA512: FamilyAESCBC,
	AES128GCM:           FamilyAESGCM,
	AES256GCM:           FamilyAESGCM,
	ChaCha20Poly1305:    FamilyChaCha20,
}

// KeyLength returns the required encryption key length for a supported
// algorithm. The second return value is false for unknown algorithms.
func (a Algorithm) KeyLength() (int, bool) {
	length, ok := keyLengths[a]
	return length, ok
}

// Family returns the cipher family for a supported algorithm. The second
// return value is false for unknown algorithms.
func (a Algorithm) Family() (Family, bool) {
	family, ok := families[a]
	return family, ok
}

// Supported reports whether the algorithm is one of the built-in identifiers.
func (a Algorithm) Supported() bool {
	_, ok := keyLengths[a]
	return ok
}
