package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-auth-service/internal/container"
	handlers "github.com/oksasatya/go-ddd-auth-service/internal/interface/http"
	"github.com/oksasatya/go-ddd-auth-service/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Cookies *helpers.CookieManager
}

func NewAuthModule(h *handlers.AuthHandler, cookies *helpers.CookieManager) *AuthModule {
	return &AuthModule{Handler: h, Cookies: cookies}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	rdb := limiterRedis()
	var allow middleware.AllowFunc
	if cfg.RateLimitBypassPrivate {
		allow = middleware.AllowPrivateIP()
	}
	logger := container.GetLogger()

	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), allow, logger)
	verify2FALimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), allow, logger)

	rg.POST("/signup", m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/verify-2fa", verify2FALimiter, m.Handler.Verify2FA)
	rg.POST("/logout", middleware.RequireTokenCookie(m.Cookies), m.Handler.Logout)
	rg.POST("/verify-token", m.Handler.VerifyToken)
}

// limiterRedis is the client rate limiters count on, or nil when rate
// limiting is switched off.
func limiterRedis() *redis.Client {
	if !container.GetConfig().RateLimitEnabled {
		return nil
	}
	return container.GetRedis()
}
