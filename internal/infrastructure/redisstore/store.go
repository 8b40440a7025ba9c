// Package redisstore backs the OTP rate limiter and the game leaderboard
// with Redis.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
	"github.com/nitintomar713/sacmtb-surya/internal/usecase"
)

const (
	limiterWindow = time.Minute
	limiterMax    = 3
)

type Store struct {
	client *redis.Client
	logger *logger.Logger
}

func NewStore(addr, password string, db int, log *logger.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Connected to Redis", "addr", addr)
	return &Store{client: client, logger: log}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Allow implements a fixed window counter: at most limiterMax hits per key
// per window.
func (s *Store) Allow(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, "ratelimit:"+key, limiterWindow).Err(); err != nil {
			s.logger.Warn("Failed to set rate limit expiry", "key", key, "error", err)
		}
	}
	return count <= limiterMax, nil
}

// RecordScore keeps the member's best score only: ZAddGT never lowers an
// existing entry.
func (s *Store) RecordScore(ctx context.Context, gameName, userID string, score int) error {
	err := s.client.ZAddGT(ctx, "leaderboard:"+gameName, redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to record leaderboard score: %w", err)
	}
	return nil
}

func (s *Store) Top(ctx context.Context, gameName string, limit int) ([]usecase.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	members, err := s.client.ZRevRangeWithScores(ctx, "leaderboard:"+gameName, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]usecase.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		userID, ok := member.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, usecase.LeaderboardEntry{
			UserID: userID,
			Score:  int(member.Score),
		})
	}
	return entries, nil
}
