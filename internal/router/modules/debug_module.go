package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-auth-service/internal/container"
	"github.com/oksasatya/go-ddd-auth-service/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar counters, rate-limited per IP
	rl := middleware.RateLimit(limiterRedis(), 120, time.Minute, middleware.KeyByIP(), nil, container.GetLogger())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
