package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-server/internal/observability"

	"github.com/google/uuid"
)

// Result represents the outcome of one rate limit check
type Result struct {
	Allowed    bool          `json:"allowed"`
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	ResetAt    time.Time     `json:"reset_at"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// WindowCounter is a shared sliding window, satisfied by *redis.Client.
type WindowCounter interface {
	IsEnabled() bool
	WindowCount(ctx context.Context, key string, since time.Time) (int64, time.Time, error)
	WindowAdd(ctx context.Context, key, member string, at time.Time, ttl time.Duration) error
}

// Service limits requests per caller within a sliding window. It counts in
// Redis when available and in process memory otherwise.
type Service struct {
	counter WindowCounter
	limit   int
	window  time.Duration
	logger  *observability.Logger
	now     func() time.Time

	mu    sync.Mutex
	local map[string][]time.Time
}

// NewService creates a limiter allowing limit requests per window. counter
// may be nil.
func NewService(counter WindowCounter, limit int, window time.Duration, logger *observability.Logger) *Service {
	return &Service{
		counter: counter,
		limit:   limit,
		window:  window,
		logger:  logger,
		now:     time.Now,
		local:   make(map[string][]time.Time),
	}
}

// Enabled reports whether any limit is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.limit > 0
}

// Check records one request for key and reports whether it may proceed.
func (s *Service) Check(ctx context.Context, key string) Result {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rate_limit_key", Value: key},
		observability.Field{Key: "rate_limit", Value: s.limit},
	)

	if s.counter != nil && s.counter.IsEnabled() {
		result, err := s.checkShared(ctx, key)
		if err == nil {
			return result
		}
		s.logger.Error(ctx, "redis rate limit check failed, falling back to memory", err)
	}
	return s.checkLocal(key)
}

func (s *Service) checkShared(ctx context.Context, key string) (Result, error) {
	redisKey := fmt.Sprintf("rl:%s", key)
	now := s.now()

	count, oldest, err := s.counter.WindowCount(ctx, redisKey, now.Add(-s.window))
	if err != nil {
		return Result{}, err
	}
	if int(count) >= s.limit {
		return s.denied(now, oldest), nil
	}

	// Members must be unique or two hits in the same millisecond collapse
	member := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
	if err := s.counter.WindowAdd(ctx, redisKey, member, now, 2*s.window); err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count) - 1,
		ResetAt:   now.Add(s.window),
	}, nil
}

func (s *Service) checkLocal(key string) Result {
	now := s.now()
	since := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	hits := s.local[key]
	kept := hits[:0]
	for _, at := range hits {
		if at.After(since) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= s.limit {
		s.local[key] = kept
		return s.denied(now, kept[0])
	}

	kept = append(kept, now)
	s.local[key] = kept
	return Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - len(kept),
		ResetAt:   now.Add(s.window),
	}
}

func (s *Service) denied(now, oldest time.Time) Result {
	resetAt := now.Add(s.window)
	if !oldest.IsZero() {
		resetAt = oldest.Add(s.window)
	}
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return Result{
		Allowed:    false,
		Limit:      s.limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}
