package assistant

import (
	"strings"
	"sync"
	"time"
)

// replyCacheTTL is how long a cached reply stays servable.
const replyCacheTTL = 60 * time.Second

type cacheEntry struct {
	reply     string
	createdAt time.Time
}

// ReplyCache maps a normalized question to its last reply. Stale entries are
// treated as misses but stay in the map until a later Store overwrites them;
// there is no size bound, which is acceptable at single-household scale.
type ReplyCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func NewReplyCache(ttl time.Duration) *ReplyCache {
	if ttl <= 0 {
		ttl = replyCacheTTL
	}
	return &ReplyCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// NormalizeKey collapses case and surrounding whitespace so semantically
// identical questions share one entry.
func NormalizeKey(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// Lookup returns the cached reply for key, if one exists and is fresh.
func (c *ReplyCache) Lookup(key string, now time.Time) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || now.Sub(entry.createdAt) >= c.ttl {
		return "", false
	}
	return entry.reply, true
}

// Store records the reply for key, overwriting any previous entry.
func (c *ReplyCache) Store(key, reply string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{reply: reply, createdAt: now}
}
