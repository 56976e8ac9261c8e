// api/db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

const dashboardSummaryKey = "dashboard:summary"

func CacheDashboardSummary(ctx context.Context, summary *model.DashboardSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard summary: %w", err)
	}

	ttl := viper.GetDuration("dashboard.summaryCacheTTL")
	err = RedisClient.Set(ctx, dashboardSummaryKey, summaryJSON, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to cache dashboard summary: %w", err)
	}

	logger.Debug("Dashboard summary cached successfully")
	return nil
}

func GetCachedDashboardSummary(ctx context.Context) (*model.DashboardSummary, error) {
	summaryJSON, err := RedisClient.Get(ctx, dashboardSummaryKey).Result()
	if err == redis.Nil {
		logger.Debug("Dashboard summary not found in cache")
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get dashboard summary from cache: %w", err)
	}

	var summary model.DashboardSummary
	err = json.Unmarshal([]byte(summaryJSON), &summary)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard summary: %w", err)
	}

	return &summary, nil
}

func InvalidateDashboardSummary(ctx context.Context) error {
	err := RedisClient.Del(ctx, dashboardSummaryKey).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate dashboard summary: %w", err)
	}
	logger.Debug("Dashboard summary invalidated")
	return nil
}

func CacheUnreadCount(ctx context.Context, userID uint, count int64) error {
	key := fmt.Sprintf("notifications:unread:%d", userID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err := RedisClient.Set(ctx, key, count, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache unread count: %w", err)
	}
	return nil
}

func GetCachedUnreadCount(ctx context.Context, userID uint) (int64, bool, error) {
	key := fmt.Sprintf("notifications:unread:%d", userID)
	count, err := RedisClient.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, false, nil
	} else if err != nil {
		return 0, false, fmt.Errorf("failed to get unread count from cache: %w", err)
	}
	return count, true, nil
}

func InvalidateUnreadCount(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("notifications:unread:%d", userID)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate unread count: %w", err)
	}
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
