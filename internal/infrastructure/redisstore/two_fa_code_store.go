package redisstore

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
)

// Hash fields of a pending code.
const (
	fieldAttempt  = "login_attempt_id"
	fieldCodeHash = "code_hash"
	fieldFailures = "failures"
)

// Deletes the pending code only if it is still the one that was checked.
var consumeCodeScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Counts a failure on a live pending code and drops it at the limit.
// Returns -1 when the code is already gone.
var recordFailureScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
local n = redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
if n >= tonumber(ARGV[2]) then
  redis.call("DEL", KEYS[1])
end
return n
`)

// TwoFACodeStore keeps one hash per email with the code bcrypt-hashed; Redis
// handles expiry.
type TwoFACodeStore struct {
	rdb *redis.Client
}

func NewTwoFACodeStore(rdb *redis.Client) *TwoFACodeStore {
	return &TwoFACodeStore{rdb: rdb}
}

func (s *TwoFACodeStore) AddCode(ctx context.Context, email entity.Email, attempt entity.LoginAttemptID, code entity.TwoFACode, ttl time.Duration) error {
	hash, err := helpers.HashSecret(code.String())
	if err != nil {
		return repository.Unexpected("hash 2fa code", err)
	}
	key := helpers.KeyTwoFACode(email.String())
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldAttempt, attempt.String(), fieldCodeHash, hash, fieldFailures, 0)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return repository.Unexpected("redis add 2fa code", err)
	}
	return nil
}

func (s *TwoFACodeStore) ConsumeCode(ctx context.Context, email entity.Email, attempt entity.LoginAttemptID, code entity.TwoFACode) error {
	key := helpers.KeyTwoFACode(email.String())
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return repository.Unexpected("redis get 2fa code", err)
	}
	if len(fields) == 0 {
		return repository.ErrLoginAttemptNotFound
	}

	attemptOK := subtle.ConstantTimeCompare([]byte(fields[fieldAttempt]), []byte(attempt.String())) == 1
	codeOK := helpers.CompareSecret(fields[fieldCodeHash], code.String())
	if !attemptOK || !codeOK {
		if err := recordFailureScript.Run(ctx, s.rdb, []string{key}, fieldFailures, repository.MaxTwoFACodeFailures).Err(); err != nil {
			return repository.Unexpected("redis record 2fa failure", err)
		}
		return entity.ErrInvalidTwoFACode
	}

	deleted, err := consumeCodeScript.Run(ctx, s.rdb, []string{key}, fieldCodeHash, fields[fieldCodeHash]).Int()
	if err != nil {
		return repository.Unexpected("redis consume 2fa code", err)
	}
	if deleted == 0 {
		// consumed, replaced or expired since it was read
		return repository.ErrLoginAttemptNotFound
	}
	return nil
}

func (s *TwoFACodeStore) RemoveCode(ctx context.Context, email entity.Email) error {
	if err := helpers.RedisDel(ctx, s.rdb, helpers.KeyTwoFACode(email.String())); err != nil {
		return repository.Unexpected("redis remove 2fa code", err)
	}
	return nil
}

var _ repository.TwoFACodeStore = (*TwoFACodeStore)(nil)
