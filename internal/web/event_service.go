package web

import (
	"context"
	"log"
	"sync"

	"securehome/server/internal/interfaces"
	"securehome/server/internal/storage"
)

// EventService fans security events out to connected dashboards and keeps a
// recent-events list in Redis when a store is available. Without Redis the
// feed degrades to broadcast-only.
type EventService struct {
	hub        *EventHub
	redisStore *storage.RedisStore
	mu         sync.RWMutex
}

// NewEventService creates a new event service
func NewEventService(hub *EventHub) *EventService {
	return &EventService{hub: hub}
}

// SetRedisStore sets the Redis store for event persistence
func (s *EventService) SetRedisStore(redisStore *storage.RedisStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redisStore = redisStore
}

// Record broadcasts an event and persists it without blocking the caller.
func (s *EventService) Record(event interfaces.SecurityEvent) {
	s.hub.Broadcast(event)

	s.mu.RLock()
	redisStore := s.redisStore
	s.mu.RUnlock()

	if redisStore != nil {
		go func(ev interfaces.SecurityEvent) {
			if err := redisStore.StoreEvent(context.Background(), ev); err != nil {
				log.Printf("[EventService] Failed to store event to Redis: %v", err)
			}
		}(event)
	}
}

// Recent returns up to limit recent events, most recent first. Without Redis
// the feed has no history and the result is empty.
func (s *EventService) Recent(ctx context.Context, limit int64) ([]interfaces.SecurityEvent, error) {
	s.mu.RLock()
	redisStore := s.redisStore
	s.mu.RUnlock()

	if redisStore == nil {
		return []interfaces.SecurityEvent{}, nil
	}
	return redisStore.GetRecentEvents(ctx, limit)
}
