package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationApp "github.com/procureflow/procureflow/internal/application/notification"
	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/infrastructure/auth"
	"github.com/procureflow/procureflow/internal/infrastructure/config"
	"github.com/procureflow/procureflow/internal/infrastructure/email"
	"github.com/procureflow/procureflow/internal/infrastructure/permission"
	"github.com/procureflow/procureflow/internal/infrastructure/pubsub"
	"github.com/procureflow/procureflow/internal/infrastructure/services"
	"github.com/procureflow/procureflow/internal/infrastructure/storage"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	shareddb "github.com/procureflow/procureflow/internal/shared/db"
	"github.com/procureflow/procureflow/internal/shared/goroutine"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// notificationBus carries notification events between server instances.
// Without Redis it is an in-process bus.
type notificationBus interface {
	PublishNotificationEvent(ctx context.Context, event notification.Event) error
	SubscribeNotificationEvents(ctx context.Context, handler func(event notification.Event)) error
}

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services, and is responsible for wiring them
// together. Shutdown releases what it started.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	loginLimiter   *middleware.RateLimiter

	// Infrastructure services
	txManager  *shareddb.TransactionManager
	jwtSvc     *auth.JWTService
	hasher     *auth.BcryptPasswordHasher
	store      *storage.MinioObjectStore
	policy     *permission.TransitionPolicy
	hub        *services.NotificationHub
	bus        notificationBus
	dispatcher *notificationApp.Dispatcher

	// Bus subscription relaying events into the hub
	relayCancel context.CancelFunc
	relayDone   chan struct{}
	relayMu     sync.Mutex
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, storage, auth, policy, realtime
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db)
	c.txManager = shareddb.NewTransactionManager(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	store, err := storage.NewMinioObjectStore(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to create object store: %w", err)
	}
	c.store = store

	policy, err := permission.NewTransitionPolicy(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to load transition policy: %w", err)
	}
	c.policy = policy

	if c.redis != nil {
		c.bus = pubsub.NewRedisNotificationBus(c.redis, log)
	} else {
		log.Infow("redis disabled, notification events stay in process")
		c.bus = pubsub.NewLocalNotificationBus(log)
	}
	c.hub = services.NewNotificationHub(log, &services.NotificationHubConfig{
		MaxConnsPerUser: cfg.Realtime.MaxConnsPerUser,
	}, pubsub.MarshalStreamEvent)

	var mailer notificationApp.Mailer
	if cfg.Email.Enabled {
		mailer = email.NewSMTPNotificationMailer(&cfg.Email, cfg.Server.BaseURL)
	}
	c.dispatcher = notificationApp.NewDispatcher(c.bus, c.repos.userRepo, mailer, log)

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.loginLimiter = middleware.NewRateLimiter(c.redis, "auth", 10, loginRateWindow, log)
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client, nil
}

// Prepare creates the storage bucket and seeds the default transition
// policy. It is called once before the server starts accepting requests.
func (c *Container) Prepare(ctx context.Context) error {
	if err := c.store.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("failed to prepare object storage: %w", err)
	}
	if err := c.policy.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed transition policy: %w", err)
	}
	return nil
}

// StartNotificationRelay feeds bus events into the local hub until ctx is
// done or Shutdown is called.
func (c *Container) StartNotificationRelay(ctx context.Context) {
	c.relayMu.Lock()
	defer c.relayMu.Unlock()
	if c.relayCancel != nil {
		return
	}

	relayCtx, cancel := context.WithCancel(ctx)
	c.relayCancel = cancel
	c.relayDone = make(chan struct{})

	done := c.relayDone
	goroutine.SafeGo(c.log, "notification-relay", func() {
		defer close(done)
		if err := c.bus.SubscribeNotificationEvents(relayCtx, c.hub.Deliver); err != nil && relayCtx.Err() == nil {
			c.log.Errorw("notification relay stopped", "error", err)
		}
	})
}

// Shutdown stops the relay, closes every realtime stream and releases
// Redis. The database is owned by the caller.
func (c *Container) Shutdown() {
	c.relayMu.Lock()
	if c.relayCancel != nil {
		c.relayCancel()
		<-c.relayDone
		c.relayCancel = nil
	}
	c.relayMu.Unlock()

	c.hub.Shutdown()

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
