package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/domain"
)

// ChallengeStore is an in-memory implementation of app.ChallengeRepository.
// Code uniqueness is enforced the same way the Postgres unique index does it:
// a duplicate insert reports domain.ErrDuplicateCode.
type ChallengeStore struct {
	mu     sync.RWMutex
	byID   map[string]domain.Challenge
	byCode map[string]string // code -> id
}

var _ app.ChallengeRepository = (*ChallengeStore)(nil)

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{
		byID:   make(map[string]domain.Challenge),
		byCode: make(map[string]string),
	}
}

func (s *ChallengeStore) Insert(_ context.Context, c domain.Challenge) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byCode[c.Code]; taken {
		return domain.Challenge{}, fmt.Errorf("%w: %q", domain.ErrDuplicateCode, c.Code)
	}
	s.byID[c.ID] = c
	s.byCode[c.Code] = c.ID
	return c, nil
}

func (s *ChallengeStore) ByCode(_ context.Context, code string) (domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	return s.byID[id], nil
}

func (s *ChallengeStore) ListForUser(_ context.Context, userID string, limit int) ([]domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenges := make([]domain.Challenge, 0)
	for _, c := range s.byID {
		if c.ChallengerID == userID || c.RecipientID == userID {
			challenges = append(challenges, c)
		}
	}
	sort.Slice(challenges, func(i, j int) bool {
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})
	if len(challenges) > limit {
		challenges = challenges[:limit]
	}
	return challenges, nil
}

func (s *ChallengeStore) MarkExpired(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return domain.ErrChallengeNotFound
	}
	c.Status = domain.ChallengeExpired
	s.byID[id] = c
	return nil
}
