package domain

import (
	"encoding/base64"
	"os"
	"strings"
	"sync"

	"github.com/allisson/blockcrypt/internal/errors"
)

// Key ring configuration errors.
var (
	// ErrKeysNotSet indicates the KEYS environment variable is not configured.
	ErrKeysNotSet = errors.Wrap(errors.ErrInvalidInput, "KEYS not set")

	// ErrActiveKeyIDNotSet indicates ACTIVE_KEY_ID is not configured.
	ErrActiveKeyIDNotSet = errors.Wrap(errors.ErrInvalidInput, "ACTIVE_KEY_ID not set")

	// ErrInvalidKeysFormat indicates a key ring entry is not "id:base64key".
	ErrInvalidKeysFormat = errors.Wrap(errors.ErrInvalidInput, "invalid keys format")

	// ErrInvalidKeyBase64 indicates a key ring entry is not valid base64.
	ErrInvalidKeyBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid key base64")

	// ErrActiveKeyNotFound indicates ACTIVE_KEY_ID references a missing key.
	ErrActiveKeyNotFound = errors.Wrap(errors.ErrInvalidInput, "active key not found")

	// ErrKeyNotFound indicates a referenced key ID is not in the ring.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "key not found")
)

// Key is a named symmetric key resolved into KeyMaterial.
type Key struct {
	ID       string
	Material *KeyMaterial
}

// KeyRing manages a collection of named keys with one designated as active.
//
// The ring allows key rotation: new envelopes are sealed with the active key
// while old keys remain available to open envelopes sealed before rotation.
// Thread safety: the ring uses sync.Map internally for concurrent access.
type KeyRing struct {
	activeID string
	keys     sync.Map
}

// ActiveKeyID returns the ID of the key used to seal new envelopes.
func (r *KeyRing) ActiveKeyID() string {
	return r.activeID
}

// Get retrieves a key from the ring by its ID.
func (r *KeyRing) Get(id string) (*Key, bool) {
	if key, ok := r.keys.Load(id); ok {
		return key.(*Key), ok
	}
	return nil, false
}

// Close zeroes all key material and resets the ring.
func (r *KeyRing) Close() {
	r.keys.Range(func(_, value any) bool {
		if key, ok := value.(*Key); ok {
			key.Material.Close()
		}
		return true
	})
	r.activeID = ""
	r.keys.Clear()
}

// NewKeyRing builds a key ring from "id:base64key" entries, resolving each
// decoded key into KeyMaterial for the given algorithm.
//
// Format example:
//
//	raw    = "key1:YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXoxMjM0NTY3OA==,key2:..."
//	active = "key2"
//
// Decoded key bytes are zeroed after being resolved. On error the ring is
// closed to prevent partial initialization.
func NewKeyRing(raw, active string, alg Algorithm) (*KeyRing, error) {
	if raw == "" {
		return nil, ErrKeysNotSet
	}
	if active == "" {
		return nil, ErrActiveKeyIDNotSet
	}

	ring := &KeyRing{activeID: active}

	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" {
			ring.Close()
			return nil, errors.Wrapf(ErrInvalidKeysFormat, "%q", part)
		}
		id := p[0]
		keyBytes, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			ring.Close()
			return nil, errors.Wrapf(ErrInvalidKeyBase64, "key %s", id)
		}
		material, err := New(keyBytes, Options{Algorithm: alg})
		Zero(keyBytes)
		if err != nil {
			ring.Close()
			return nil, err
		}
		ring.keys.Store(id, &Key{ID: id, Material: material})
	}

	if _, ok := ring.Get(active); !ok {
		ring.Close()
		return nil, errors.Wrapf(ErrActiveKeyNotFound, "ACTIVE_KEY_ID=%s", active)
	}

	return ring, nil
}

// LoadKeyRingFromEnv loads the key ring from the KEYS and ACTIVE_KEY_ID
// environment variables.
func LoadKeyRingFromEnv(alg Algorithm) (*KeyRing, error) {
	return NewKeyRing(os.Getenv("KEYS"), os.Getenv("ACTIVE_KEY_ID"), alg)
}
