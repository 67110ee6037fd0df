// Package memory provides process-local store implementations. Nothing here
// survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
)

// UserStore is a map-backed registry guarded by a single RWMutex: one writer
// or many readers over the whole map.
type UserStore struct {
	mu    sync.RWMutex
	users map[entity.Email]entity.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[entity.Email]entity.User)}
}

func (s *UserStore) AddUser(_ context.Context, u entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrUserAlreadyExists
	}
	s.users[u.Email] = u
	return nil
}

func (s *UserStore) GetUser(_ context.Context, email entity.Email) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) ValidateUser(_ context.Context, email entity.Email, password entity.Password) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	if !u.Password.Matches(password) {
		return repository.ErrInvalidCredentials
	}
	return nil
}

func (s *UserStore) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

var (
	_ repository.UserStore   = (*UserStore)(nil)
	_ repository.UserCounter = (*UserStore)(nil)
)
