package entity

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// Email is a validated, normalized email address. The zero value is not a
// valid email; obtain one through ParseEmail.
type Email struct {
	value string
}

// ParseEmail rejects the empty string, then trims and lower-cases raw and
// checks it against the email grammar. Whitespace-only input is a format
// error, not an empty one.
func ParseEmail(raw string) (Email, error) {
	if raw == "" {
		return Email{}, ErrEmptyEmail
	}
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if err := emailValidator.Var(normalized, "email"); err != nil {
		return Email{}, ErrInvalidEmailFormat
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string { return e.value }
