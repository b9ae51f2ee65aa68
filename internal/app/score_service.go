package app

import (
	"context"
	"errors"

	"globetrotter-service/internal/domain"
)

// ScoreService applies the fixed point award to a user's counters. Counters
// only ever increase; the underlying repository performs the increment
// atomically at the single-record level.
type ScoreService struct {
	users UserRepository
}

func NewScoreService(users UserRepository) *ScoreService {
	return &ScoreService{users: users}
}

// Award increments score and correct count on a correct answer, or the
// incorrect count otherwise. An unknown username is a deliberate no-op, not
// an error.
func (s *ScoreService) Award(ctx context.Context, username string, correct bool) error {
	var err error
	if correct {
		err = s.users.IncrementScore(ctx, username, PointsPerCorrect, 1, 0)
	} else {
		err = s.users.IncrementScore(ctx, username, 0, 0, 1)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	return err
}
