package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"storefront-server/internal/observability"
	"storefront-server/internal/store"

	redisLib "github.com/redis/go-redis/v9"
)

// PointsKey is the sorted set holding each store's total points
const PointsKey = "lb:stores:points"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Strategy names where a ranking was read from
type Strategy string

const (
	StrategyRedis Strategy = "redis"
	StrategyStore Strategy = "store"
)

// StoreReader is the authoritative store collection
type StoreReader interface {
	ListStorefronts(ctx context.Context) ([]store.Storefront, error)
	GetStorefrontByCode(ctx context.Context, code string) (store.Storefront, error)
}

// Ranking is the sorted set index; *redis.Client satisfies it
type Ranking interface {
	IsEnabled() bool
	SetScore(ctx context.Context, key, member string, score float64) error
	TopWithScores(ctx context.Context, key string, n int64) ([]redisLib.Z, error)
	AtLeast(ctx context.Context, key string, min float64) ([]redisLib.Z, error)
}

// Entry is one ranked store
type Entry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	ReferralCode string `json:"referralCode"`
	TotalPoints  int    `json:"totalPoints"`
	TotalOrders  int    `json:"totalOrders"`
}

type Board struct {
	Entries  []Entry  `json:"entries"`
	Strategy Strategy `json:"strategy"`
}

type Service struct {
	stores  StoreReader
	ranking Ranking
	logger  *observability.Logger
}

// NewService builds the leaderboard. ranking may be nil or disabled, in
// which case every read scans the store collection.
func NewService(stores StoreReader, ranking Ranking, logger *observability.Logger) *Service {
	return &Service{stores: stores, ranking: ranking, logger: logger}
}

func (s *Service) redisEnabled() bool {
	return s.ranking != nil && s.ranking.IsEnabled()
}

// Top ranks stores by total points, then total orders, then referral code.
func (s *Service) Top(ctx context.Context, limit int) (Board, error) {
	limit = clampLimit(limit)
	ctx = observability.WithFields(ctx, observability.Field{Key: "limit", Value: limit})

	if s.redisEnabled() {
		entries, err := s.topFromRedis(ctx, limit)
		if err == nil {
			return Board{Entries: entries, Strategy: StrategyRedis}, nil
		}
		s.logger.Error(ctx, "failed to read leaderboard from redis, falling back to store", err)
	}

	stores, err := s.stores.ListStorefronts(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list stores for leaderboard", err)
		return Board{}, err
	}
	return Board{Entries: rank(stores, limit), Strategy: StrategyStore}, nil
}

// topFromRedis reads every member tied with the limit-th score so the
// tie-break happens on full store records.
func (s *Service) topFromRedis(ctx context.Context, limit int) ([]Entry, error) {
	top, err := s.ranking.TopWithScores(ctx, PointsKey, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read top scores: %w", err)
	}
	if len(top) == limit {
		top, err = s.ranking.AtLeast(ctx, PointsKey, top[len(top)-1].Score)
		if err != nil {
			return nil, fmt.Errorf("failed to read tied scores: %w", err)
		}
	}

	stores := make([]store.Storefront, 0, len(top))
	for _, z := range top {
		code, ok := z.Member.(string)
		if !ok {
			continue
		}
		st, err := s.stores.GetStorefrontByCode(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	return rank(stores, limit), nil
}

// Sync copies one store's points into the sorted set. Unknown codes are
// ignored.
func (s *Service) Sync(ctx context.Context, code string) error {
	if !s.redisEnabled() {
		return nil
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_code", Value: code})

	st, err := s.stores.GetStorefrontByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn(ctx, "leaderboard sync skipped unknown store")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}

	if err := s.ranking.SetScore(ctx, PointsKey, st.ReferralCode, float64(st.TotalPoints)); err != nil {
		return fmt.Errorf("failed to set leaderboard score: %w", err)
	}
	return nil
}

// Rebuild rescores every store, for a fresh Redis or after downtime.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	if !s.redisEnabled() {
		return 0, nil
	}
	stores, err := s.stores.ListStorefronts(ctx)
	if err != nil {
		return 0, err
	}
	for _, st := range stores {
		if err := s.ranking.SetScore(ctx, PointsKey, st.ReferralCode, float64(st.TotalPoints)); err != nil {
			return 0, fmt.Errorf("failed to rebuild leaderboard: %w", err)
		}
	}
	s.logger.Info(observability.WithFields(ctx, observability.Field{Key: "stores", Value: len(stores)}), "leaderboard rebuilt")
	return len(stores), nil
}

func rank(stores []store.Storefront, limit int) []Entry {
	sorted := make([]store.Storefront, len(stores))
	copy(sorted, stores)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.TotalOrders != b.TotalOrders {
			return a.TotalOrders > b.TotalOrders
		}
		return a.ReferralCode < b.ReferralCode
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]Entry, 0, len(sorted))
	for i, st := range sorted {
		entries = append(entries, Entry{
			Rank:         i + 1,
			Name:         st.Name,
			ReferralCode: st.ReferralCode,
			TotalPoints:  st.TotalPoints,
			TotalOrders:  st.TotalOrders,
		})
	}
	return entries
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}
