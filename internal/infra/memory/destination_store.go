package memory

import (
	"context"
	"fmt"
	"sync"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/domain"
)

// DestinationStore is an in-memory implementation of
// app.DestinationRepository. It also serves as a CatalogLoader, so demo mode
// and tests can run the same cache path as production.
type DestinationStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.Destination
	byAlias map[string]string // alias -> id
	order   []string
}

var _ app.DestinationRepository = (*DestinationStore)(nil)

func NewDestinationStore() *DestinationStore {
	return &DestinationStore{
		byID:    make(map[string]domain.Destination),
		byAlias: make(map[string]string),
	}
}

func (s *DestinationStore) ByID(_ context.Context, id string) (domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	if !ok {
		return domain.Destination{}, domain.ErrDestinationNotFound
	}
	return d, nil
}

func (s *DestinationStore) Insert(_ context.Context, d domain.Destination) (domain.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(d)
}

// InsertMany inserts the whole batch or nothing, matching the single-statement
// multi-row insert the database store issues.
func (s *DestinationStore) InsertMany(_ context.Context, ds []domain.Destination) ([]domain.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := make(map[string]bool, len(ds))
	for _, d := range ds {
		if _, taken := s.byAlias[d.Alias]; taken || batch[d.Alias] {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateAlias, d.Alias)
		}
		batch[d.Alias] = true
	}
	inserted := make([]domain.Destination, 0, len(ds))
	for _, d := range ds {
		stored, err := s.insertLocked(d)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, stored)
	}
	return inserted, nil
}

func (s *DestinationStore) insertLocked(d domain.Destination) (domain.Destination, error) {
	if _, taken := s.byAlias[d.Alias]; taken {
		return domain.Destination{}, fmt.Errorf("%w: %q", domain.ErrDuplicateAlias, d.Alias)
	}
	s.byID[d.ID] = d
	s.byAlias[d.Alias] = d.ID
	s.order = append(s.order, d.ID)
	return d, nil
}

func (s *DestinationStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// LoadCatalog returns the (id, name) projection in insertion order.
func (s *DestinationStore) LoadCatalog(_ context.Context) ([]domain.DestinationRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]domain.DestinationRef, 0, len(s.order))
	for _, id := range s.order {
		refs = append(refs, domain.DestinationRef{ID: id, Name: s.byID[id].Name})
	}
	return refs, nil
}
