// Package repositorytest holds behaviour suites shared by every store
// implementation.
package repositorytest

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
)

// UserStoreSuite checks the UserStore contract. Set NewStore before running;
// it is called once per test.
type UserStoreSuite struct {
	suite.Suite
	NewStore func() repository.UserStore

	store repository.UserStore
	ctx   context.Context
}

func (s *UserStoreSuite) SetupTest() {
	s.Require().NotNil(s.NewStore, "NewStore must be set")
	s.store = s.NewStore()
	s.ctx = context.Background()
}

func (s *UserStoreSuite) email(raw string) entity.Email {
	e, err := entity.ParseEmail(raw)
	s.Require().NoError(err)
	return e
}

func (s *UserStoreSuite) password(raw string) entity.Password {
	p, err := entity.ParsePassword(raw)
	s.Require().NoError(err)
	return p
}

func (s *UserStoreSuite) count() (int, bool) {
	c, ok := s.store.(repository.UserCounter)
	if !ok {
		return 0, false
	}
	n, err := c.CountUsers(s.ctx)
	s.Require().NoError(err)
	return n, true
}

func (s *UserStoreSuite) TestAddUser_Duplicate() {
	u := entity.NewUser(s.email("test@example.com"), s.password("password123"), true)

	s.Require().NoError(s.store.AddUser(s.ctx, u))
	s.Require().ErrorIs(s.store.AddUser(s.ctx, u), repository.ErrUserAlreadyExists)

	if n, ok := s.count(); ok {
		s.Equal(1, n)
	}
}

func (s *UserStoreSuite) TestAddUser_DuplicateWithDifferentFields() {
	email := s.email("test@example.com")
	s.Require().NoError(s.store.AddUser(s.ctx, entity.NewUser(email, s.password("password123"), true)))

	err := s.store.AddUser(s.ctx, entity.NewUser(email, s.password("otherpassword"), false))
	s.Require().ErrorIs(err, repository.ErrUserAlreadyExists)

	got, err := s.store.GetUser(s.ctx, email)
	s.Require().NoError(err)
	s.Equal("password123", got.Password.String())
	s.True(got.Requires2FA)
}

func (s *UserStoreSuite) TestGetUser() {
	email := s.email("test@example.com")
	u := entity.NewUser(email, s.password("password123"), true)

	_, err := s.store.GetUser(s.ctx, email)
	s.Require().ErrorIs(err, repository.ErrUserNotFound)

	s.Require().NoError(s.store.AddUser(s.ctx, u))

	got, err := s.store.GetUser(s.ctx, email)
	s.Require().NoError(err)
	s.Equal(u, got)
}

func (s *UserStoreSuite) TestValidateUser() {
	email := s.email("test@example.com")
	password := s.password("password123")

	s.Require().ErrorIs(s.store.ValidateUser(s.ctx, email, password), repository.ErrUserNotFound)

	s.Require().NoError(s.store.AddUser(s.ctx, entity.NewUser(email, password, true)))

	s.NoError(s.store.ValidateUser(s.ctx, email, password))
	s.ErrorIs(s.store.ValidateUser(s.ctx, email, s.password("wrongpassword")), repository.ErrInvalidCredentials)
	s.ErrorIs(s.store.ValidateUser(s.ctx, s.email("nobody@example.com"), s.password("wrongpassword")), repository.ErrUserNotFound)
}

func (s *UserStoreSuite) TestScenario() {
	s.Require().NoError(s.store.AddUser(s.ctx, entity.NewUser(s.email("test@example.com"), s.password("password123"), true)))

	s.NoError(s.store.ValidateUser(s.ctx, s.email("test@example.com"), s.password("password123")))
	s.ErrorIs(s.store.ValidateUser(s.ctx, s.email("test@example.com"), s.password("wrongpassword")), repository.ErrInvalidCredentials)

	_, err := s.store.GetUser(s.ctx, s.email("nobody@example.com"))
	s.ErrorIs(err, repository.ErrUserNotFound)
}

func (s *UserStoreSuite) TestConcurrentAddSameEmail() {
	u := entity.NewUser(s.email("race@example.com"), s.password("password123"), false)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		exists  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.AddUser(s.ctx, u)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, repository.ErrUserAlreadyExists):
				exists++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, success)
	s.Equal(workers-1, exists)
}
