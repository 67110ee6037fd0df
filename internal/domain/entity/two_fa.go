package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// LoginAttemptID identifies one pending second-factor login.
type LoginAttemptID struct {
	value string
}

// NewLoginAttemptID returns a fresh random attempt id.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{value: uuid.NewString()}
}

// ParseLoginAttemptID accepts any well-formed UUID.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return LoginAttemptID{}, ErrInvalidLoginAttemptID
	}
	return LoginAttemptID{value: id.String()}, nil
}

func (id LoginAttemptID) String() string { return id.value }

const twoFACodeLength = 6

// TwoFACode is a six digit second-factor code.
type TwoFACode struct {
	value string
}

// NewTwoFACode generates a uniformly random code.
func NewTwoFACode() (TwoFACode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return TwoFACode{}, err
	}
	return TwoFACode{value: fmt.Sprintf("%06d", n.Int64())}, nil
}

// ParseTwoFACode accepts exactly six ASCII digits.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	if len(raw) != twoFACodeLength {
		return TwoFACode{}, ErrInvalidTwoFACode
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return TwoFACode{}, ErrInvalidTwoFACode
		}
	}
	return TwoFACode{value: raw}, nil
}

func (c TwoFACode) String() string { return c.value }
