package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/domain/activity"
	"tracker/internal/domain/shared/events"
	"tracker/internal/infrastructure/auth"
	"tracker/internal/infrastructure/cache"
	"tracker/internal/infrastructure/messaging"
	"tracker/internal/infrastructure/permission"
	"tracker/internal/infrastructure/storage"
	"tracker/internal/interfaces/http/middleware"
)

const loginRateWindow = time.Minute

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Auth, Blob store
// ============================================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(ctx, cfg.Redis.GetAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return wrapInit("redis", err)
		}
		c.redis = client
		log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	}

	c.repos = newRepositories(c.db, cfg.Ticket.NumberPrefix)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, c.clock)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	if c.redis != nil && cfg.Auth.LoginRateLimit > 0 {
		c.loginLimiter = middleware.NewRateLimiter(c.redis, "login", cfg.Auth.LoginRateLimit, loginRateWindow, c.clock, log)
	}

	blobs, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return wrapInit("attachment storage", err)
	}
	c.blobs = blobs

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ============================================================
// Section 2: Post-commit subscribers
// ============================================================

func (c *Container) initEvents() error {
	c.dispatcher = events.NewSyncDispatcher(c.log)
	c.statsCache = usecases.NopStatsCache{}

	if c.redis != nil {
		ttl := time.Duration(c.cfg.Redis.StatsTTLSeconds) * time.Second
		statsCache := cache.NewRedisTicketStatsCache(c.redis, ttl)
		c.statsCache = statsCache
		if err := c.dispatcher.Subscribe(activity.EventTypeRecorded, "dashboard-stats-invalidator", usecases.NewStatsInvalidator(statsCache)); err != nil {
			return wrapInit("stats cache subscriber", err)
		}
	}

	if c.cfg.Broker.Enabled {
		publisher, err := messaging.NewAMQPPublisher(c.cfg.Broker.URL, c.cfg.Broker.Queue, c.log)
		if err != nil {
			return wrapInit("activity broker", err)
		}
		c.amqp = publisher
		if err := c.dispatcher.Subscribe(activity.EventTypeRecorded, "amqp-activity-publisher", publisher); err != nil {
			return wrapInit("activity broker subscriber", err)
		}
	}

	return nil
}

// ============================================================
// Section 3: Capability checks
// ============================================================

func (c *Container) initPermission() error {
	if !c.cfg.Permission.Enabled {
		c.checker = usecases.AllowAllChecker{}
		return nil
	}

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return wrapInit("permission enforcer", err)
	}
	if c.cfg.Permission.SeedDefaults {
		if err := permission.SeedDefaultPolicies(enforcer, c.log); err != nil {
			return wrapInit("default policies", err)
		}
	}
	c.checker = enforcer
	return nil
}
