package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
)

// DB is the subset of *pgxpool.Pool the stores need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserStore persists users in the users table; the email primary key
// enforces uniqueness.
type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) AddUser(ctx context.Context, u entity.User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (email, password, requires_2fa)
		VALUES ($1, $2, $3)
	`, u.Email.String(), u.Password.String(), u.Requires2FA)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return repository.ErrUserAlreadyExists
		}
		return repository.Unexpected("insert user", err)
	}
	return nil
}

func (s *UserStore) GetUser(ctx context.Context, email entity.Email) (entity.User, error) {
	var (
		rawPassword string
		requires2FA bool
	)
	row := s.db.QueryRow(ctx, `
		SELECT password, requires_2fa
		FROM users
		WHERE email = $1
	`, email.String())
	if err := row.Scan(&rawPassword, &requires2FA); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, repository.ErrUserNotFound
		}
		return entity.User{}, repository.Unexpected("select user", err)
	}
	password, err := entity.ParsePassword(rawPassword)
	if err != nil {
		return entity.User{}, repository.Unexpected("select user", err)
	}
	return entity.NewUser(email, password, requires2FA), nil
}

func (s *UserStore) ValidateUser(ctx context.Context, email entity.Email, password entity.Password) error {
	u, err := s.GetUser(ctx, email)
	if err != nil {
		return err
	}
	if !u.Password.Matches(password) {
		return repository.ErrInvalidCredentials
	}
	return nil
}

func (s *UserStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, repository.Unexpected("count users", err)
	}
	return n, nil
}

var (
	_ repository.UserStore   = (*UserStore)(nil)
	_ repository.UserCounter = (*UserStore)(nil)
)
