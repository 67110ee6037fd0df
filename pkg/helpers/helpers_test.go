package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "user:alice@example.com", KeyUser("alice@example.com"))
	assert.Equal(t, "login:2fa:alice@example.com", KeyTwoFACode("alice@example.com"))

	k := KeyBannedToken("a.b.c")
	assert.Len(t, k, len("token:banned:")+64)
	assert.Equal(t, k, KeyBannedToken("a.b.c"))
	assert.NotEqual(t, k, KeyBannedToken("a.b.d"))
}

func TestSecretHashing(t *testing.T) {
	hash, err := HashSecret("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)
	assert.True(t, CompareSecret(hash, "123456"))
	assert.False(t, CompareSecret(hash, "654321"))
	assert.False(t, CompareSecret("not-a-hash", "123456"))
}

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	rdb, err := NewRedisClient(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, mr.Set("k", "v"))
	require.NoError(t, RedisDel(ctx, rdb, "k"))
	assert.False(t, mr.Exists("k"))

	mr.Close()
	_, err = NewRedisClient(ctx, mr.Addr(), "", 0)
	assert.Error(t, err)
}

func TestCookieManager(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("jwt", "example.com", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	m.Set(c, "tok", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	assert.Empty(t, m.Token(c))
	c.Request.AddCookie(&http.Cookie{Name: "jwt", Value: "tok"})
	assert.Equal(t, "tok", m.Token(c))

	m.Clear(c)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestLogHelpersTolerateNil(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", assert.AnError, nil)
		LogInfo(nil, "x", nil)
		LogError(NewDiscardLogger(), "x", assert.AnError, nil)
	})
}
