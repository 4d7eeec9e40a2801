// Package validation contains the pure field-validation rules for signup and
// login forms. Predicates report validity; the *Error companions return the
// user-facing message for the first rule violated, or "" when the field is
// valid. No function here performs I/O.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// PasswordMinLen and PasswordMaxLen bound accepted password lengths,
	// in characters of the raw input.
	PasswordMinLen = 6
	PasswordMaxLen = 128

	// NameMinLen and NameMaxLen bound accepted display-name lengths, in
	// characters, after trimming surrounding whitespace.
	NameMinLen = 2
	NameMaxLen = 50
)

// emailPattern matches local-part@domain.tld with no whitespace and no
// second '@'. No DNS or MX validation is attempted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email looks like a plausible address.
// Input is trimmed and lower-cased before matching.
func IsValidEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	return emailPattern.MatchString(strings.ToLower(trimmed))
}

// IsValidPassword reports whether password length is within bounds.
// Passwords are not trimmed; surrounding whitespace is significant.
func IsValidPassword(password string) bool {
	if password == "" {
		return false
	}
	n := utf8.RuneCountInString(password)
	return n >= PasswordMinLen && n <= PasswordMaxLen
}

// IsValidName reports whether the trimmed name length is within bounds.
func IsValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	n := utf8.RuneCountInString(trimmed)
	return n >= NameMinLen && n <= NameMaxLen
}

// EmailError returns the message to display for email, or "" when valid.
func EmailError(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email is required"
	}
	if !IsValidEmail(email) {
		return "Please enter a valid email address"
	}
	return ""
}

// PasswordError returns the message to display for password, or "" when valid.
func PasswordError(password string) string {
	if password == "" {
		return "Password is required"
	}
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLen {
		return "Password must be at least 6 characters"
	}
	if n > PasswordMaxLen {
		return "Password is too long"
	}
	return ""
}

// NameError returns the message to display for name, or "" when valid.
func NameError(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Name is required"
	}
	n := utf8.RuneCountInString(trimmed)
	if n < NameMinLen {
		return "Name must be at least 2 characters"
	}
	if n > NameMaxLen {
		return "Name is too long"
	}
	return ""
}
