package bootstrap

import (
	"context"
	"fmt"
	"time"

	"storefront-server/internal/api"
	"storefront-server/internal/config"
	"storefront-server/internal/events"
	"storefront-server/internal/kv"
	"storefront-server/internal/leaderboard"
	"storefront-server/internal/observability"
	"storefront-server/internal/ratelimit"
	"storefront-server/internal/store"

	authHandler "storefront-server/internal/auth/handler"
	authProcessor "storefront-server/internal/auth/processor"
	campaignHandler "storefront-server/internal/campaign/handler"
	campaignProcessor "storefront-server/internal/campaign/processor"
	catalogHandler "storefront-server/internal/catalog/handler"
	catalogProcessor "storefront-server/internal/catalog/processor"
	kafkaClient "storefront-server/internal/clients/kafka"
	"storefront-server/internal/clients/platform"
	redisClient "storefront-server/internal/clients/redis"
	ledgerHandler "storefront-server/internal/ledger/handler"
	ledgerProcessor "storefront-server/internal/ledger/processor"
	storefrontHandler "storefront-server/internal/storefront/handler"
	storefrontProcessor "storefront-server/internal/storefront/processor"
	voucherHandler "storefront-server/internal/vouchers/handler"
	voucherProcessor "storefront-server/internal/vouchers/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Handlers
	Handlers api.Handlers

	Leaderboard *leaderboard.Service

	// Clients (for cleanup)
	Redis         *redisClient.Client
	KafkaProducer *kafkaClient.Producer
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	var err error
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, err
	}

	kvStore, err := OpenKV(ctx, cfg, deps.Redis, logger)
	if err != nil {
		_ = deps.Redis.Close()
		return nil, err
	}
	deps.Store = store.New(kvStore, logger)
	if err := deps.Store.Ping(ctx); err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to reach slot store: %w", err)
	}

	// Domain events go to Kafka only when it is configured
	var producer events.EventProducer
	if cfg.Kafka.Enabled {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.BrokerList(),
			Topic:   cfg.Kafka.Topic,
		}, logger)
		producer = deps.KafkaProducer
	}
	publisher := events.NewPublisher(producer, logger)

	platformClient := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.Timeout, logger)

	// Initialize catalog processor and handler
	catalogProc := catalogProcessor.New(platformClient, logger)
	deps.Handlers.Catalog = catalogHandler.New(catalogProc, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.New(&deps.Store, platformClient, authProcessor.AdminCredentials{
		Login:        cfg.Auth.AdminLogin,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}, logger)
	deps.Handlers.Auth = authHandler.New(authProc, logger)

	// Initialize storefront processor and handler
	storefrontProc := storefrontProcessor.New(&deps.Store, &catalogProc, publisher, logger, cfg.Server.WebAppURI)
	deps.Handlers.Storefront = storefrontHandler.New(storefrontProc, logger)

	// Initialize ledger processor and handler
	ledgerProc := ledgerProcessor.New(&deps.Store, platformClient, &catalogProc, publisher, logger)
	deps.Handlers.Ledger = ledgerHandler.New(ledgerProc, logger)

	// Initialize voucher processor and handler
	voucherProc := voucherProcessor.New(&deps.Store, publisher, logger, cfg.Rewards.ReferralVoucherTarget)
	deps.Handlers.Vouchers = voucherHandler.New(voucherProc, logger)

	// Initialize campaign processor and handler
	campaignProc := campaignProcessor.New(&deps.Store, publisher, logger)
	deps.Handlers.Campaign = campaignHandler.New(campaignProc, logger)

	// The sorted set is only kept current by the worker, so the API reads
	// it only when events are flowing.
	var ranking leaderboard.Ranking
	if cfg.Kafka.Enabled && deps.Redis.IsEnabled() {
		ranking = deps.Redis
	}
	deps.Leaderboard = leaderboard.NewService(&deps.Store, ranking, logger)
	deps.Handlers.Leaderboard = leaderboard.NewHandler(deps.Leaderboard, logger)

	// A nil counter keeps the limiter in process memory
	var counter ratelimit.WindowCounter
	if deps.Redis.IsEnabled() {
		counter = deps.Redis
	}
	deps.Handlers.RateLimit = ratelimit.NewService(counter, cfg.RateLimit.RequestsPerMinute, time.Minute, logger)

	return deps, nil
}

// OpenKV opens the slot store selected by KV_BACKEND.
func OpenKV(ctx context.Context, cfg *config.Config, redis *redisClient.Client, logger *observability.Logger) (kv.Store, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "kv_backend", Value: cfg.KV.Backend})

	switch cfg.KV.Backend {
	case config.KVBackendRedis:
		if !redis.IsEnabled() {
			return nil, fmt.Errorf("redis kv backend: %w", redisClient.ErrDisabled)
		}
		logger.Info(ctx, "using redis slot store")
		return kv.NewRedis(redis.Raw(), cfg.KV.Namespace), nil

	case config.KVBackendPostgres:
		pg, err := kv.OpenPostgres(cfg.Database.ConnectionString(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		logger.Info(ctx, "using postgres slot store")
		return pg, nil

	default:
		logger.Warn(ctx, "using in-memory slot store, state is lost on restart")
		return kv.NewMemory(), nil
	}
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close slot store", err)
	}
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis", err)
	}
}
