package redis

import (
	"context"
	"testing"
	"time"

	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCatalogCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	loader := &countingLoader{CatalogLoader: seededStore(t)}
	cache := NewCatalogCache(client, loader, time.Minute)

	refs, err := cache.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("destinations:catalog") {
		t.Fatalf("expected catalog hash in redis")
	}

	// Second call should hit redis, loader not incremented.
	if _, err := cache.List(context.Background()); err != nil {
		t.Fatalf("list 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestCatalogCacheReloadsAfterTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	loader := &countingLoader{CatalogLoader: seededStore(t)}
	cache := NewCatalogCache(client, loader, time.Minute)

	if _, err := cache.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := cache.List(context.Background()); err != nil {
		t.Fatalf("list after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after TTL, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.DestinationRef, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

func seededStore(t *testing.T) *memory.DestinationStore {
	t.Helper()
	store := memory.NewDestinationStore()
	seed := []domain.Destination{
		{ID: "d1", Alias: "par01", Name: "Paris", Clues: []string{"c1"}},
		{ID: "d2", Alias: "tok01", Name: "Tokyo", Clues: []string{"c1"}},
	}
	if _, err := store.InsertMany(context.Background(), seed); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}
