package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tracker/internal/application/ticket/usecases"
	"tracker/internal/domain/shared/events"
	"tracker/internal/infrastructure/auth"
	"tracker/internal/infrastructure/config"
	"tracker/internal/infrastructure/messaging"
	"tracker/internal/interfaces/http/middleware"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and owns the connections it opened,
// which Shutdown releases. The database handle belongs to the caller.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	clock  biztime.Clock
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	loginLimiter   *middleware.RateLimiter

	// Collaborators of the ticket use cases
	jwtSvc     *auth.JWTService
	hasher     *auth.BcryptPasswordHasher
	blobs      usecases.BlobStore
	checker    usecases.CapabilityChecker
	statsCache usecases.StatsCache
	dispatcher *events.SyncDispatcher
	amqp       *messaging.AMQPPublisher
}

// NewContainer creates a new Container with all dependencies wired together.
// ctx bounds the start-up calls to Redis, the broker and the blob store.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, clock biztime.Clock, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		clock:  clock,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth, Blob store
	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 2: Post-commit subscribers - stats cache, broker
	if err := c.initEvents(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Capability checks
	if err := c.initPermission(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 4: Use cases and handlers
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine; call SetupRoutes first.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown closes the broker channel and the Redis client.
func (c *Container) Shutdown() {
	if c.amqp != nil {
		if err := c.amqp.Close(); err != nil {
			c.log.Warnw("failed to close AMQP publisher", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}

func wrapInit(section string, err error) error {
	return fmt.Errorf("failed to initialize %s: %w", section, err)
}
