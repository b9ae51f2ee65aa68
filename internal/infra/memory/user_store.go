package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/domain"
)

// UserStore is an in-memory implementation of app.UserRepository. Increments
// happen in place under the store lock, matching the atomicity the Postgres
// implementation gets from a single UPDATE.
type UserStore struct {
	mu         sync.RWMutex
	byUsername map[string]*domain.User
	byID       map[string]*domain.User
	order      []string // usernames in insertion order, for stable tie-breaks
}

var _ app.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{
		byUsername: make(map[string]*domain.User),
		byID:       make(map[string]*domain.User),
	}
}

func (s *UserStore) ByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}

func (s *UserStore) ByID(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}

func (s *UserStore) Insert(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[u.Username]; taken {
		return domain.User{}, fmt.Errorf("%w: %q", domain.ErrDuplicateUsername, u.Username)
	}
	stored := u
	s.byUsername[u.Username] = &stored
	s.byID[u.ID] = &stored
	s.order = append(s.order, u.Username)
	return stored, nil
}

func (s *UserStore) IncrementScore(_ context.Context, username string, points, correct, incorrect int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byUsername[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Score += points
	user.CorrectAnswers += correct
	user.IncorrectAnswers += incorrect
	return nil
}

// TopByScore returns users by score descending; ties keep insertion order.
func (s *UserStore) TopByScore(_ context.Context, limit int) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.order))
	for _, username := range s.order {
		users = append(users, *s.byUsername[username])
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Score > users[j].Score
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
