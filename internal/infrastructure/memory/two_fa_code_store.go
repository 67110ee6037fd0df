package memory

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
)

type pendingCode struct {
	attempt   entity.LoginAttemptID
	code      entity.TwoFACode
	expiresAt time.Time
	failures  int
}

type TwoFACodeStore struct {
	mu    sync.Mutex
	codes map[entity.Email]pendingCode
	now   func() time.Time
}

func NewTwoFACodeStore() *TwoFACodeStore {
	return &TwoFACodeStore{codes: make(map[entity.Email]pendingCode), now: time.Now}
}

func (s *TwoFACodeStore) AddCode(_ context.Context, email entity.Email, attempt entity.LoginAttemptID, code entity.TwoFACode, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = pendingCode{attempt: attempt, code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *TwoFACodeStore) ConsumeCode(_ context.Context, email entity.Email, attempt entity.LoginAttemptID, code entity.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.codes[email]
	if !ok {
		return repository.ErrLoginAttemptNotFound
	}
	if !s.now().Before(p.expiresAt) {
		delete(s.codes, email)
		return repository.ErrLoginAttemptNotFound
	}
	attemptOK := subtle.ConstantTimeCompare([]byte(p.attempt.String()), []byte(attempt.String())) == 1
	codeOK := subtle.ConstantTimeCompare([]byte(p.code.String()), []byte(code.String())) == 1
	if !attemptOK || !codeOK {
		p.failures++
		if p.failures >= repository.MaxTwoFACodeFailures {
			delete(s.codes, email)
		} else {
			s.codes[email] = p
		}
		return entity.ErrInvalidTwoFACode
	}
	delete(s.codes, email)
	return nil
}

func (s *TwoFACodeStore) RemoveCode(_ context.Context, email entity.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

var _ repository.TwoFACodeStore = (*TwoFACodeStore)(nil)
