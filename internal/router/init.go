package router

import (
	"fmt"

	"github.com/oksasatya/go-ddd-auth-service/config"
	"github.com/oksasatya/go-ddd-auth-service/internal/application"
	"github.com/oksasatya/go-ddd-auth-service/internal/container"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-auth-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-auth-service/internal/infrastructure/redisstore"
	handlers "github.com/oksasatya/go-ddd-auth-service/internal/interface/http"
	"github.com/oksasatya/go-ddd-auth-service/internal/router/modules"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
)

type AuthModuleDeps struct {
	Service *application.Service
	Handler *handlers.AuthHandler
	Cookies *helpers.CookieManager
}

// Stores groups the backends the auth service runs on.
type Stores struct {
	Users        repository.UserStore
	BannedTokens repository.BannedTokenStore
	TwoFACodes   repository.TwoFACodeStore
}

// BuildStores picks the user registry named by cfg.UserStore. Banned tokens
// and 2FA codes live in Redis whenever a client is available.
func BuildStores(cfg *config.Config) (Stores, error) {
	var s Stores
	rdb := container.GetRedis()

	switch cfg.UserStore {
	case "", config.StoreMemory:
		s.Users = memory.NewUserStore()
	case config.StorePostgres:
		pool := container.GetPGPool()
		if pool == nil {
			return Stores{}, fmt.Errorf("user store %q: postgres pool not initialized", cfg.UserStore)
		}
		s.Users = pginfra.NewUserStore(pool)
	case config.StoreRedis:
		if rdb == nil {
			return Stores{}, fmt.Errorf("user store %q: redis client not initialized", cfg.UserStore)
		}
		s.Users = redisstore.NewUserStore(rdb)
	default:
		return Stores{}, fmt.Errorf("unknown user store %q", cfg.UserStore)
	}

	if rdb != nil {
		s.BannedTokens = redisstore.NewBannedTokenStore(rdb)
		s.TwoFACodes = redisstore.NewTwoFACodeStore(rdb)
	} else {
		s.BannedTokens = memory.NewBannedTokenStore()
		s.TwoFACodes = memory.NewTwoFACodeStore()
	}
	return s, nil
}

func buildAuthDeps(stores Stores) AuthModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	service := application.NewService(
		stores.Users,
		stores.BannedTokens,
		stores.TwoFACodes,
		application.LogNotifier{Logger: logger},
		container.GetJWT(),
		logger,
		cfg.TwoFACodeTTL,
	)
	cookies := helpers.NewCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure)

	return AuthModuleDeps{
		Service: service,
		Handler: handlers.NewAuthHandler(service, cookies, logger),
		Cookies: cookies,
	}
}

// InitModules builds the configured stores and registers every module.
// Call it once during startup after the container is populated.
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	stores, err := BuildStores(cfg)
	if err != nil {
		return err
	}
	container.GetLogger().WithField("user_store", cfg.UserStore).Info("user store selected")

	authDeps := buildAuthDeps(stores)
	r.Add(modules.NewAuthModule(authDeps.Handler, authDeps.Cookies))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	r.Add(modules.NewAssetsModule(r.Engine, cfg.AssetsDir))
	return nil
}
