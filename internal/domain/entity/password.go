package entity

import (
	"crypto/subtle"
	"unicode/utf8"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 8

// Password is a validated password credential holding the raw value.
type Password struct {
	value string
}

// ParsePassword accepts any password of at least MinPasswordLength characters.
func ParsePassword(raw string) (Password, error) {
	n := utf8.RuneCountInString(raw)
	if n == 0 {
		return Password{}, ErrEmptyPassword
	}
	if n < MinPasswordLength {
		return Password{}, ErrPasswordTooShort
	}
	return Password{value: raw}, nil
}

func (p Password) String() string { return p.value }

// Matches reports whether p and other hold the same value, in constant time
// with respect to the content.
func (p Password) Matches(other Password) bool {
	return subtle.ConstantTimeCompare([]byte(p.value), []byte(other.value)) == 1
}
