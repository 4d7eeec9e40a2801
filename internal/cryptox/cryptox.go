// Package cryptox implements salted password hashing for the local
// credential store. Records persist a random salt and the derived key;
// plaintext passwords are never written to storage.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const saltSize = 32

// NewSalt returns a fresh random salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey derives a verification key from a password and salt using
// argon2id. The same (password, salt) pair always yields the same key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// Verify compares a stored key with a candidate in constant time.
func Verify(key []byte, candidate []byte) bool {
	return subtle.ConstantTimeCompare(key, candidate) == 1
}
