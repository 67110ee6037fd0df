package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-auth-service/config"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-auth-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-auth-service/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
)

func main() {
	email := flag.String("email", "demo@example.com", "seed user email")
	password := flag.String("password", "password123", "seed user password")
	twoFA := flag.Bool("2fa", false, "require a second factor for the seed user")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	var store repository.UserStore
	switch cfg.UserStore {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:         cfg.PostgresDSN(),
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		store = pginfra.NewUserStore(pool)
	case config.StoreRedis:
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		store = redisstore.NewUserStore(rdb)
	default:
		log.Fatalf("USER_STORE=%q is not persistent; use postgres or redis", cfg.UserStore)
	}

	e, err := entity.ParseEmail(*email)
	if err != nil {
		log.Fatalf("invalid email: %v", err)
	}
	p, err := entity.ParsePassword(*password)
	if err != nil {
		log.Fatalf("invalid password: %v", err)
	}

	err = store.AddUser(ctx, entity.NewUser(e, p, *twoFA))
	switch {
	case errors.Is(err, repository.ErrUserAlreadyExists):
		fmt.Printf("user already seeded: email=%s\n", e)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		fmt.Printf("seeded user: email=%s requires2FA=%t\n", e, *twoFA)
	}
}
