package entity

import "errors"

// Parse errors returned by the value constructors in this package.
var (
	ErrEmptyEmail            = errors.New("email is empty")
	ErrInvalidEmailFormat    = errors.New("email has invalid format")
	ErrEmptyPassword         = errors.New("password is empty")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrInvalidLoginAttemptID = errors.New("invalid login attempt id")
	ErrInvalidTwoFACode      = errors.New("invalid 2fa code")
)
