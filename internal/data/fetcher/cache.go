package fetcher

import (
	"sync"
	"time"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
)

type cacheEntry struct {
	records   []model.InteractionRecord
	fetchedAt time.Time
}

// reportCache keeps recently fetched report batches keyed by
// server|date_ini|date_end. Entries expire after the configured TTL so a
// re-run within a few minutes does not hammer the reporting API.
type reportCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*cacheEntry
}

func newReportCache(ttl time.Duration) *reportCache {
	return &reportCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

func (rc *reportCache) Get(key string) ([]model.InteractionRecord, bool) {
	rc.mu.RLock()
	entry, ok := rc.entries[key]
	rc.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > rc.ttl {
		rc.mu.Lock()
		delete(rc.entries, key)
		rc.mu.Unlock()
		return nil, false
	}
	return entry.records, true
}

func (rc *reportCache) Set(key string, records []model.InteractionRecord) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = &cacheEntry{
		records:   records,
		fetchedAt: time.Now(),
	}
}

func (rc *reportCache) Reset() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[string]*cacheEntry)
}

func (rc *reportCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.entries)
}
