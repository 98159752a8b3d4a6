package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	logrus "github.com/sirupsen/logrus"
)

var RedisClient *redis.Client

// Results of a ride search are cached briefly; seat counts move with every
// booking so the TTL stays short.
const searchCacheTTL = 2 * time.Minute

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func searchCacheKey(from, to, date string) string {
	return fmt.Sprintf("rides:search:%s:%s:%s",
		strings.ToLower(from), strings.ToLower(to), date)
}

// CacheSearchResults stores a serialized search response
func CacheSearchResults(ctx context.Context, from, to, date string, payload interface{}) error {
	if RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return RedisClient.Set(ctx, searchCacheKey(from, to, date), data, searchCacheTTL).Err()
}

// GetCachedSearchResults retrieves a cached search response, if any
func GetCachedSearchResults(ctx context.Context, from, to, date string) (json.RawMessage, bool) {
	if RedisClient == nil {
		return nil, false
	}

	data, err := RedisClient.Get(ctx, searchCacheKey(from, to, date)).Bytes()
	if err != nil {
		return nil, false
	}

	return json.RawMessage(data), true
}

// PublishBookingUpdate publishes a booking lifecycle event to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status string, data map[string]interface{}) error {
	if RedisClient == nil {
		return nil
	}

	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	if err := RedisClient.Publish(ctx, "booking:updates", jsonData).Err(); err != nil {
		logrus.WithError(err).Warn("failed to publish booking update")
		return err
	}

	return nil
}
