package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
)

type BannedTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewBannedTokenStore() *BannedTokenStore {
	return &BannedTokenStore{tokens: make(map[string]time.Time), now: time.Now}
}

func (s *BannedTokenStore) BanToken(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = s.now().Add(ttl)
	return nil
}

// IsBanned also drops the entry once it has expired.
func (s *BannedTokenStore) IsBanned(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.tokens, token)
		return false, nil
	}
	return true, nil
}

var _ repository.BannedTokenStore = (*BannedTokenStore)(nil)
