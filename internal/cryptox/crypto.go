// Package cryptox implements the password credential scheme used for local
// accounts: argon2id key derivation with a per-user random salt, stored as a
// self-describing string.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	scheme  = "argon2id"
	saltLen = 16
	keyLen  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// HashPassword returns "argon2id$<salt>$<key>" with both parts in unpadded
// base64. Every call uses a fresh salt.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := DeriveKey([]byte(password), salt)

	enc := base64.RawStdEncoding
	return scheme + "$" + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches encoded. A malformed
// encoded value never matches.
func VerifyPassword(encoded string, password string) bool {
	salt, want, err := parse(encoded)
	if err != nil {
		return false
	}

	got := DeriveKey([]byte(password), salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parse(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return nil, nil, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	if salt, err = enc.DecodeString(parts[1]); err != nil {
		return nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	if key, err = enc.DecodeString(parts[2]); err != nil {
		return nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	if len(salt) == 0 || len(key) != keyLen {
		return nil, nil, ErrMalformedHash
	}
	return salt, key, nil
}
