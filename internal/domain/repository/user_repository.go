package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnexpected marks a failure of the storage backend itself.
	ErrUnexpected = errors.New("unexpected user store error")

	ErrLoginAttemptNotFound = errors.New("login attempt not found")
)

// Unexpected wraps a backend failure so that errors.Is(err, ErrUnexpected)
// holds and the cause is still reachable.
func Unexpected(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnexpected, err)
}

// UserStore is the registry of identities keyed by email.
type UserStore interface {
	// AddUser inserts u, or returns ErrUserAlreadyExists if its email is taken.
	AddUser(ctx context.Context, u entity.User) error

	// GetUser returns a copy of the stored user or ErrUserNotFound.
	GetUser(ctx context.Context, email entity.Email) (entity.User, error)

	// ValidateUser returns ErrUserNotFound for unknown emails and
	// ErrInvalidCredentials when the password does not match.
	ValidateUser(ctx context.Context, email entity.Email, password entity.Password) error
}

// BannedTokenStore remembers tokens revoked by logout until they expire.
type BannedTokenStore interface {
	BanToken(ctx context.Context, token string, ttl time.Duration) error
	IsBanned(ctx context.Context, token string) (bool, error)
}

// MaxTwoFACodeFailures is how many wrong submissions a pending code survives.
const MaxTwoFACodeFailures = 5

// TwoFACodeStore keeps at most one pending second-factor code per email.
type TwoFACodeStore interface {
	// AddCode replaces any pending code for email and resets its failures.
	AddCode(ctx context.Context, email entity.Email, attempt entity.LoginAttemptID, code entity.TwoFACode, ttl time.Duration) error

	// ConsumeCode checks attempt and code and, on a match, removes the pending
	// code in the same step so it can be redeemed once. It returns
	// ErrLoginAttemptNotFound when nothing is pending and
	// entity.ErrInvalidTwoFACode on mismatch. The MaxTwoFACodeFailures-th
	// mismatch drops the pending code.
	ConsumeCode(ctx context.Context, email entity.Email, attempt entity.LoginAttemptID, code entity.TwoFACode) error

	RemoveCode(ctx context.Context, email entity.Email) error
}

// UserCounter is implemented by stores that can report how many users they hold.
type UserCounter interface {
	CountUsers(ctx context.Context) (int, error)
}
