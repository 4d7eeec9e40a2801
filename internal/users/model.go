// Package users owns the durable collection of registered users, including
// their credentials, persisted as a single JSON blob in the key-value store.
package users

import "strings"

// User is the public-facing identity of a registered person. It never
// carries a credential.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Record is a User plus its stored credential: a random salt and the
// argon2id key derived from the password. The plaintext password is never
// persisted. Email is unique across all records, compared case-insensitively
// after trimming.
type Record struct {
	User
	PasswordHash []byte `json:"password_hash"`
	Salt         []byte `json:"salt"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Used for comparison and for storage on signup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns the first record whose normalized email matches, or
// nil. The collection never holds duplicates given the signup uniqueness
// check, so first match wins.
func FindByEmail(records []Record, email string) *Record {
	normalized := NormalizeEmail(email)
	for i := range records {
		if NormalizeEmail(records[i].Email) == normalized {
			return &records[i]
		}
	}
	return nil
}
