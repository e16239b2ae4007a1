package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"stateless_auth/internal/common"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters are a fixed security constant. Changing them invalidates
// every stored hash and every client-side hashing implementation, so any
// change needs a migration plan for existing credentials.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
	hashLen = 64

	// DefaultSaltLength is the salt size used at account provisioning.
	DefaultSaltLength = 16

	signingKeyLength = 64
)

// GenerateSalt returns length cryptographically random bytes.
func GenerateSalt(length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("salt length must be positive: %w", common.ErrBadRequest)
	}
	salt := make([]byte, length)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the 64-byte scrypt digest of a UTF-8 password under
// the given salt. Deterministic for a fixed (password, salt) pair.
func HashPassword(password string, salt []byte) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("password must not be empty: %w", common.ErrBadRequest)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("salt must not be empty: %w", common.ErrBadRequest)
	}
	hash, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, hashLen)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}

// HashPasswordString is HashPassword over a base64 salt, returning a base64
// digest. This is the form stored at rest and sent on the wire.
func HashPasswordString(password, salt string) (string, error) {
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding salt: %w", common.ErrBadRequest)
	}
	hash, err := HashPassword(password, rawSalt)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

// GenerateSigningKey returns fresh symmetric key material for the token
// codec. Called once at process start when no shared key is configured.
func GenerateSigningKey() ([]byte, error) {
	return GenerateSalt(signingKeyLength)
}
