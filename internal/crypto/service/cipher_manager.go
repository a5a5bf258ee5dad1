package service

import (
	cryptoDomain "github.com/allisson/blockcrypt/internal/crypto/domain"
	"github.com/allisson/blockcrypt/internal/errors"
)

// CipherManagerService implements the CipherManager interface. The cipher
// family is resolved once from the key material's algorithm; no per-call
// type inspection happens afterwards.
type CipherManagerService struct{}

// NewCipherManager creates a new CipherManagerService.
func NewCipherManager() *CipherManagerService {
	return &CipherManagerService{}
}

// CreateCipher creates a standard-mode cipher for the key material's algorithm.
func (cm *CipherManagerService) CreateCipher(km *cryptoDomain.KeyMaterial) (Cipher, error) {
	return cm.CreateCipherWithMode(km, ModeStandard)
}

// CreateCipherWithMode creates a cipher instance in the given mode.
//
// Returns ErrEnvironmentUnsupported when the key material's algorithm has no
// cipher primitive registered on this host (custom algorithms resolve key
// material but carry no primitive).
func (cm *CipherManagerService) CreateCipherWithMode(km *cryptoDomain.KeyMaterial, mode Mode) (Cipher, error) {
	if km == nil {
		return nil, errors.Wrap(cryptoDomain.ErrConfiguration, "nil key material")
	}

	family, ok := km.Algorithm().Family()
	if !ok {
		return nil, errors.Wrapf(cryptoDomain.ErrEnvironmentUnsupported, "%q", km.Algorithm())
	}

	switch family {
	case cryptoDomain.FamilyAESCBC:
		return NewAESCBC(km, mode)
	case cryptoDomain.FamilyAESGCM:
		return NewAESGCM(km, mode)
	case cryptoDomain.FamilyChaCha20:
		return NewChaCha20Poly1305(km, mode)
	default:
		return nil, errors.Wrapf(cryptoDomain.ErrUnsupportedAlgorithm, "%q", km.Algorithm())
	}
}
