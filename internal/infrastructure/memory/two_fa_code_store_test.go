package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTwoFACodeStore(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewTwoFACodeStore()
	store.now = clock.now

	email, err := entity.ParseEmail("test@example.com")
	require.NoError(t, err)
	attempt := entity.NewLoginAttemptID()
	code, err := entity.ParseTwoFACode("123456")
	require.NoError(t, err)
	wrongCode, err := entity.ParseTwoFACode("654321")
	require.NoError(t, err)

	assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, code), repository.ErrLoginAttemptNotFound)

	t.Run("mismatch keeps pending code, match consumes it", func(t *testing.T) {
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, wrongCode), entity.ErrInvalidTwoFACode)
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, entity.NewLoginAttemptID(), code), entity.ErrInvalidTwoFACode)
		assert.NoError(t, store.ConsumeCode(ctx, email, attempt, code))
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, code), repository.ErrLoginAttemptNotFound)
	})

	t.Run("new code replaces pending one", func(t *testing.T) {
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		next := entity.NewLoginAttemptID()
		require.NoError(t, store.AddCode(ctx, email, next, wrongCode, time.Minute))
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, code), entity.ErrInvalidTwoFACode)
		assert.NoError(t, store.ConsumeCode(ctx, email, next, wrongCode))
	})

	t.Run("too many failures drop the code", func(t *testing.T) {
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		for i := 0; i < repository.MaxTwoFACodeFailures; i++ {
			assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, wrongCode), entity.ErrInvalidTwoFACode)
		}
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, code), repository.ErrLoginAttemptNotFound)
	})

	t.Run("failures below the limit are tolerated", func(t *testing.T) {
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		for i := 0; i < repository.MaxTwoFACodeFailures-1; i++ {
			assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, wrongCode), entity.ErrInvalidTwoFACode)
		}
		assert.NoError(t, store.ConsumeCode(ctx, email, attempt, code))
	})

	t.Run("reissue resets failures", func(t *testing.T) {
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		for i := 0; i < repository.MaxTwoFACodeFailures-1; i++ {
			assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, wrongCode), entity.ErrInvalidTwoFACode)
		}
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, wrongCode), entity.ErrInvalidTwoFACode)
		assert.NoError(t, store.ConsumeCode(ctx, email, attempt, code))
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		clock.advance(time.Minute)
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, code), repository.ErrLoginAttemptNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))
		require.NoError(t, store.RemoveCode(ctx, email))
		assert.ErrorIs(t, store.ConsumeCode(ctx, email, attempt, code), repository.ErrLoginAttemptNotFound)
	})
}

func TestTwoFACodeStore_ConcurrentConsumeRedeemsOnce(t *testing.T) {
	ctx := context.Background()
	store := NewTwoFACodeStore()
	email, err := entity.ParseEmail("race@example.com")
	require.NoError(t, err)
	attempt := entity.NewLoginAttemptID()
	code, err := entity.ParseTwoFACode("123456")
	require.NoError(t, err)
	require.NoError(t, store.AddCode(ctx, email, attempt, code, time.Minute))

	const n = 16
	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.ConsumeCode(ctx, email, attempt, code) == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), ok.Load())
}

func TestBannedTokenStore(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewBannedTokenStore()
	store.now = clock.now

	banned, err := store.IsBanned(ctx, "token")
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, store.BanToken(ctx, "token", time.Hour))
	banned, err = store.IsBanned(ctx, "token")
	require.NoError(t, err)
	assert.True(t, banned)

	clock.advance(time.Hour)
	banned, err = store.IsBanned(ctx, "token")
	require.NoError(t, err)
	assert.False(t, banned)
}
