package redis

import (
	"context"
	"math/rand"
	"time"

	"globetrotter-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches the destination catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.DestinationRef, error)
}

// CatalogCache keeps the destination (id, name) projection in a Redis hash
// and falls back to a loader on cache miss.
// Stored as: HSET destinations:catalog {destinationID} {name}
type CatalogCache struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

const catalogKey = "destinations:catalog"

func NewCatalogCache(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) List(ctx context.Context) ([]domain.DestinationRef, error) {
	cached, err := c.client.HGetAll(ctx, catalogKey).Result()
	if err == nil && len(cached) > 0 {
		return refsFromHash(cached), nil
	}

	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := c.client.HGetAll(ctx, catalogKey).Result()
		if err == nil && len(cached) > 0 {
			return refsFromHash(cached), nil
		}

		refs, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		if len(refs) == 0 {
			return refs, nil
		}

		pipe := c.client.Pipeline()
		for _, ref := range refs {
			pipe.HSet(ctx, catalogKey, ref.ID, ref.Name)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, catalogKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return refs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.DestinationRef), nil
}

func refsFromHash(cached map[string]string) []domain.DestinationRef {
	refs := make([]domain.DestinationRef, 0, len(cached))
	for id, name := range cached {
		refs = append(refs, domain.DestinationRef{ID: id, Name: name})
	}
	return refs
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
