package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"callflow-studio/internal/audit"
	"callflow-studio/internal/config"
	"callflow-studio/internal/routingconfig"
	"callflow-studio/pkg/utils"
)

// store bundles the repositories chosen by STORE_BACKEND.
type store struct {
	routing routingconfig.Repository
	audit   audit.Repository

	// ping reports backend reachability for /readyz.
	ping  func(ctx context.Context) error
	close func()
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := utils.OpenPostgres(ctx, cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			return store{}, fmt.Errorf("postgres init: %w", err)
		}
		routingRepo := routingconfig.NewPostgresRepo(db)
		auditRepo := audit.NewPostgresRepo(db)
		if err := routingRepo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return store{}, fmt.Errorf("routing schema: %w", err)
		}
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return store{}, fmt.Errorf("audit schema: %w", err)
		}
		log.Info("store ready", "backend", cfg.Store.Backend)
		return store{
			routing: routingRepo,
			audit:   auditRepo,
			ping:    func(ctx context.Context) error { return utils.HealthCheck(ctx, db, 2*time.Second) },
			close:   func() { _ = db.Close() },
		}, nil

	case config.StoreRedis:
		rdb, err := utils.OpenRedis(ctx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			return store{}, fmt.Errorf("redis init: %w", err)
		}
		log.Info("store ready", "backend", cfg.Store.Backend, "ttl", cfg.Redis.TTL.String())
		// Audit history stays process-local with the Redis backend.
		return store{
			routing: routingconfig.NewRedisRepo(rdb, cfg.Redis.TTL),
			audit:   audit.NewMemoryRepo(),
			ping:    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			close:   func() { _ = rdb.Close() },
		}, nil

	default:
		log.Warn("using in-memory store; configurations are lost on restart")
		return store{
			routing: routingconfig.NewMemoryRepo(),
			audit:   audit.NewMemoryRepo(),
			ping:    func(context.Context) error { return nil },
			close:   func() {},
		}, nil
	}
}
