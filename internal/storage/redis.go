package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"securehome/server/internal/config"
	"securehome/server/internal/interfaces"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) GetClient() *redis.Client {
	return s.client
}

// Helper methods for common operations
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Exists(ctx context.Context, keys ...string) (int64, error) {
	return s.client.Exists(ctx, keys...).Result()
}

// Security event feed storage
const (
	eventListKey     = "events:recent"
	eventMaxListSize = 10000 // Maximum number of events to keep in the list
	eventDedupKey    = "events:dedup"
	eventDedupTTL    = 5 * time.Minute
	eventListTTL     = 24 * time.Hour
)

// StoreEvent stores a security event in Redis
func (s *RedisStore) StoreEvent(ctx context.Context, event interfaces.SecurityEvent) error {
	// Deduplication check so a retried ingestion does not double-log
	dedupKey := fmt.Sprintf("%s:%s:%s:%d", eventDedupKey, event.Type, event.Message, event.Timestamp)
	exists, err := s.Exists(ctx, dedupKey)
	if err != nil {
		return fmt.Errorf("failed to check dedup: %w", err)
	}
	if exists > 0 {
		return nil // Duplicate, skip
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// LPUSH keeps the list most-recent-first
	if err := s.client.LPush(ctx, eventListKey, data).Err(); err != nil {
		return fmt.Errorf("failed to store event in list: %w", err)
	}

	if err := s.client.LTrim(ctx, eventListKey, 0, int64(eventMaxListSize-1)).Err(); err != nil {
		return fmt.Errorf("failed to trim event list: %w", err)
	}

	if err := s.Set(ctx, dedupKey, "1", eventDedupTTL); err != nil {
		return fmt.Errorf("failed to set dedup key: %w", err)
	}

	if err := s.client.Expire(ctx, eventListKey, eventListTTL).Err(); err != nil {
		// Non-critical error, log but don't fail
		log.Printf("[RedisStore] Warning: failed to set list TTL: %v", err)
	}

	return nil
}

// GetRecentEvents retrieves recent security events from Redis
func (s *RedisStore) GetRecentEvents(ctx context.Context, limit int64) ([]interfaces.SecurityEvent, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100 // Default limit
	}

	results, err := s.client.LRange(ctx, eventListKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get events from list: %w", err)
	}

	events := make([]interfaces.SecurityEvent, 0, len(results))
	for _, result := range results {
		var event interfaces.SecurityEvent
		if err := json.Unmarshal([]byte(result), &event); err != nil {
			continue // Skip invalid entries
		}
		events = append(events, event)
	}

	return events, nil
}

// GetEventCount returns the number of events in the list
func (s *RedisStore) GetEventCount(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, eventListKey).Result()
}

// ClearEvents clears all events from Redis
func (s *RedisStore) ClearEvents(ctx context.Context) error {
	return s.Del(ctx, eventListKey)
}
