package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront-server/internal/bootstrap"
	"storefront-server/internal/clients/redis"
	"storefront-server/internal/config"
	"storefront-server/internal/leaderboard"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"
	"storefront-server/internal/workers"
)

// The worker keeps the Redis leaderboard in step with store and order events.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}
	if !cfg.Kafka.Enabled {
		log.Fatal("KAFKA_ENABLED must be true to run the worker")
	}
	if !cfg.Redis.Enabled {
		log.Fatal("REDIS_ENABLED must be true to run the worker")
	}

	logger := observability.NewLogger()
	ctx := context.Background()

	logger.Info(ctx, "Starting leaderboard worker...")

	redisClient, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		log.Fatalf("failed to connect to redis: %s", err)
	}
	defer redisClient.Close()

	kvStore, err := bootstrap.OpenKV(ctx, cfg, redisClient, logger)
	if err != nil {
		log.Fatalf("failed to open slot store: %s", err)
	}
	dataStore := store.New(kvStore, logger)
	defer dataStore.Close()

	service := leaderboard.NewService(&dataStore, redisClient, logger)

	// Seed the sorted set so stores created before the worker existed rank too
	if n, err := service.Rebuild(ctx); err != nil {
		logger.Error(ctx, "failed to rebuild leaderboard", err)
	} else {
		logger.Info(ctx, fmt.Sprintf("leaderboard rebuilt with %d stores", n))
	}

	consumerConfig := workers.DefaultConsumerConfig(cfg.Kafka.BrokerList(), cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic)
	consumerConfig.NumWorkers = cfg.WorkerPool.LeaderboardWorkers
	consumer := workers.NewConsumer(consumerConfig, leaderboard.NewProjector(service), logger)

	logger.Info(ctx, fmt.Sprintf(`Leaderboard worker configuration:
  - Workers: %d
  - Kafka brokers: %v
  - Kafka topic: %s
  - Consumer group: %s`,
		consumerConfig.NumWorkers, consumerConfig.Brokers, consumerConfig.Topic, consumerConfig.ConsumerGroup))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "leaderboard consumer error", err)
		}
	}()

	select {
	case <-sigChan:
		logger.Info(ctx, "Received shutdown signal, stopping workers...")
		consumer.Stop()
	case <-done:
	}

	<-done
	logger.Info(ctx, "Leaderboard worker stopped")
}
