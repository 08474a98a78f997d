package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates stored digests.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashPassword derives a digest from password with a fresh random salt. Both
// are hex encoded.
func HashPassword(password string) (digest, salt string, err error) {
	raw := make([]byte, saltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	return derive(password, raw), salt, nil
}

// VerifyPassword reports whether password matches digest under salt.
func VerifyPassword(password, digest, salt string) bool {
	raw, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	got, _ := hex.DecodeString(derive(password, raw))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func derive(password string, salt []byte) string {
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key)
}
