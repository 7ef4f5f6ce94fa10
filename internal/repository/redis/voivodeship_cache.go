package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
	"github.com/blstream/ShopMe-Backend/internal/core/port"
)

// VoivodeshipCache caches the voivodeship reference list in Redis. The list
// changes essentially never, so a single JSON blob with a TTL is enough.
type VoivodeshipCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewVoivodeshipCache constructs the cache around the shared Redis client.
func NewVoivodeshipCache(client *redis.Client, key string, ttl time.Duration) *VoivodeshipCache {
	return &VoivodeshipCache{client: client, key: key, ttl: ttl}
}

type cachedVoivodeship struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Get returns the cached list. The second result is false on a cache miss;
// corrupt payloads count as misses so a bad write heals on the next Set.
func (c *VoivodeshipCache) Get(ctx context.Context) ([]domain.Voivodeship, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read voivodeship cache: %w", err)
	}

	var cached []cachedVoivodeship
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, nil
	}

	voivodeships := make([]domain.Voivodeship, 0, len(cached))
	for _, entry := range cached {
		voivodeships = append(voivodeships, domain.Voivodeship{ID: entry.ID, Name: entry.Name})
	}
	return voivodeships, true, nil
}

// Set stores the list with the configured TTL.
func (c *VoivodeshipCache) Set(ctx context.Context, voivodeships []domain.Voivodeship) error {
	cached := make([]cachedVoivodeship, 0, len(voivodeships))
	for _, v := range voivodeships {
		cached = append(cached, cachedVoivodeship{ID: v.ID, Name: v.Name})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal voivodeship cache: %w", err)
	}

	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write voivodeship cache: %w", err)
	}
	return nil
}

var _ port.VoivodeshipCache = (*VoivodeshipCache)(nil)
