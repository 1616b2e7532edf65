package consol

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores rendered consolidation reports in redis so repeated
// reviews of the same document set skip the database entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// CacheKey derives a deterministic key for a document set. References
// are sorted so the key is independent of request ordering, matching
// the order independence of the consolidation itself.
func CacheKey(refs []DocumentRef) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, fmt.Sprintf("%s:%d", ref.Type, ref.ID))
	}
	sort.Strings(parts)
	return "consol:report:" + strings.Join(parts, ",")
}

// Get returns the cached report for key, if any.
func (c *Cache) Get(ctx context.Context, key string) (Report, bool) {
	if c == nil || c.client == nil {
		return Report{}, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return Report{}, false
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, false
	}
	return report, true
}

// Set stores the report under key. Cache write failures are swallowed;
// the report was already built and the next request rebuilds it.
func (c *Cache) Set(ctx context.Context, key string, report Report) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, data, c.ttl).Err()
}
