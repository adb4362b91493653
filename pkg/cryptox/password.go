package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Algorithm names a salted password hashing scheme. The legacy scheme exists
// for records migrated from the old bookshop database; new records should use
// Argon2id.
type Algorithm string

const (
	// AlgorithmSHA256 is hex(SHA-256(salt || password)), the scheme the
	// original bookshop stored its users with.
	AlgorithmSHA256 Algorithm = "sha256"

	// AlgorithmArgon2id is Argon2id with the parameters below, base64-encoded.
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Argon2id parameters (RFC 9106 second recommended option).
const (
	argonIterations  uint32 = 3
	argonMemory      uint32 = 64 * 1024
	argonParallelism uint8  = 4
	argonKeyLength   uint32 = 32
)

const saltLength = 16

// ParseAlgorithm validates a stored algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmSHA256, AlgorithmArgon2id:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("cryptox: unknown hash algorithm %q", s)
}

// GenerateSalt returns a fresh random salt, base64url-encoded.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate salt: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(salt), nil
}

// HashPassword derives the salted hash of password under the given algorithm.
func HashPassword(algo Algorithm, password, salt string) (string, error) {
	switch algo {
	case AlgorithmSHA256:
		sum := sha256.Sum256([]byte(salt + password))
		return hex.EncodeToString(sum[:]), nil
	case AlgorithmArgon2id:
		key := argon2.IDKey(
			[]byte(password),
			[]byte(salt),
			argonIterations,
			argonMemory,
			argonParallelism,
			argonKeyLength,
		)
		return base64.RawStdEncoding.EncodeToString(key), nil
	}
	return "", fmt.Errorf("cryptox: unknown hash algorithm %q", algo)
}

// VerifyPassword recomputes the salted hash and compares it to the stored
// hash in constant time. An unknown algorithm verifies as false.
func VerifyPassword(algo Algorithm, password, salt, storedHash string) bool {
	computed, err := HashPassword(algo, password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
