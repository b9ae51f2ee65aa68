package app

import (
	"context"

	"globetrotter-service/internal/domain"
)

// DefaultLeaderboardSize is used when a caller does not specify a limit.
const DefaultLeaderboardSize = 10

// LeaderboardService is a read-only ranked projection of users by score. It
// carries no state of its own.
type LeaderboardService struct {
	users UserRepository
}

func NewLeaderboardService(users UserRepository) *LeaderboardService {
	return &LeaderboardService{users: users}
}

// Top returns the n highest-scoring users, descending, ties kept in insertion
// order, with 1-based ranks assigned by position.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultLeaderboardSize
	}
	users, err := s.users.TopByScore(ctx, n)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = domain.LeaderboardEntry{
			Rank:     i + 1,
			Username: user.Username,
			Score:    user.Score,
		}
	}
	return entries, nil
}
