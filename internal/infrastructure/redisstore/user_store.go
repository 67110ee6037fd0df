// Package redisstore implements the stores on top of Redis.
package redisstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
)

// addUserScript creates the user hash and indexes the email in one step.
// Returns 0 when the user already exists.
var addUserScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("HSET", KEYS[1], "email", ARGV[1], "password", ARGV[2], "requires_2fa", ARGV[3])
redis.call("SADD", KEYS[2], ARGV[1])
return 1
`)

// UserStore keeps each user in a hash at helpers.KeyUser(email).
type UserStore struct {
	rdb *redis.Client
}

func NewUserStore(rdb *redis.Client) *UserStore {
	return &UserStore{rdb: rdb}
}

func (s *UserStore) AddUser(ctx context.Context, u entity.User) error {
	email := u.Email.String()
	requires2FA := "0"
	if u.Requires2FA {
		requires2FA = "1"
	}
	res, err := addUserScript.Run(ctx, s.rdb,
		[]string{helpers.KeyUser(email), helpers.KeyUserIndex},
		email, u.Password.String(), requires2FA,
	).Int()
	if err != nil {
		return repository.Unexpected("redis add user", err)
	}
	if res == 0 {
		return repository.ErrUserAlreadyExists
	}
	return nil
}

func (s *UserStore) GetUser(ctx context.Context, email entity.Email) (entity.User, error) {
	data, err := s.rdb.HGetAll(ctx, helpers.KeyUser(email.String())).Result()
	if err != nil {
		return entity.User{}, repository.Unexpected("redis get user", err)
	}
	if len(data) == 0 {
		return entity.User{}, repository.ErrUserNotFound
	}
	password, err := entity.ParsePassword(data["password"])
	if err != nil {
		return entity.User{}, repository.Unexpected("redis get user", err)
	}
	return entity.NewUser(email, password, data["requires_2fa"] == "1"), nil
}

func (s *UserStore) ValidateUser(ctx context.Context, email entity.Email, password entity.Password) error {
	stored, err := s.rdb.HGet(ctx, helpers.KeyUser(email.String()), "password").Result()
	if errors.Is(err, redis.Nil) {
		return repository.ErrUserNotFound
	}
	if err != nil {
		return repository.Unexpected("redis validate user", err)
	}
	storedPassword, err := entity.ParsePassword(stored)
	if err != nil {
		return repository.Unexpected("redis validate user", err)
	}
	if !storedPassword.Matches(password) {
		return repository.ErrInvalidCredentials
	}
	return nil
}

func (s *UserStore) CountUsers(ctx context.Context) (int, error) {
	n, err := s.rdb.SCard(ctx, helpers.KeyUserIndex).Result()
	if err != nil {
		return 0, repository.Unexpected("redis count users", err)
	}
	return int(n), nil
}

var (
	_ repository.UserStore   = (*UserStore)(nil)
	_ repository.UserCounter = (*UserStore)(nil)
)
