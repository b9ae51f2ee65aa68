package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"globetrotter-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches the destination catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.DestinationRef, error)
}

// CatalogCache caches the destination catalog with a TTL to avoid re-reading
// the full set on every question.
type CatalogCache struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	refs      []domain.DestinationRef
	expiresAt time.Time
}

func NewCatalogCache(loader CatalogLoader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) List(ctx context.Context) ([]domain.DestinationRef, error) {
	now := c.clock()

	c.mu.RLock()
	if c.refs != nil && c.expiresAt.After(now) {
		refs := c.refs
		c.mu.RUnlock()
		return refs, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.refs != nil && c.expiresAt.After(now) {
			refs := c.refs
			c.mu.RUnlock()
			return refs, nil
		}
		c.mu.RUnlock()

		refs, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.refs = refs
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return refs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.DestinationRef), nil
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
