package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"globetrotter-service/internal/domain"
	"github.com/google/uuid"
)

const (
	codeLength      = 6
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 5

	// challengeHorizon is the fixed span after which a challenge expires.
	challengeHorizon = 7 * 24 * time.Hour

	listChallengesLimit = 100
)

// ChallengeService issues and resolves shareable challenge codes. Codes are
// enforced unique by the storage layer; generation optimistically retries on
// collision.
type ChallengeService struct {
	challenges ChallengeRepository
	users      UserRepository
	now        func() time.Time
	rnd        *rand.Rand
}

// NewChallengeService builds a challenge issuer. The random source must be
// safe for concurrent use (use NewSeededRand).
func NewChallengeService(challenges ChallengeRepository, users UserRepository, rnd *rand.Rand) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		users:      users,
		now:        time.Now,
		rnd:        rnd,
	}
}

// NewChallengeServiceWithClock is for deterministic expiry in tests.
func NewChallengeServiceWithClock(challenges ChallengeRepository, users UserRepository, rnd *rand.Rand, now func() time.Time) *ChallengeService {
	s := NewChallengeService(challenges, users, rnd)
	s.now = now
	return s
}

// Create issues a pending challenge snapshotting the challenger's current
// score, expiring a fixed seven days out.
func (s *ChallengeService) Create(ctx context.Context, challengerUsername string) (domain.Challenge, error) {
	user, err := s.users.ByUsername(ctx, challengerUsername)
	if err != nil {
		return domain.Challenge{}, err
	}

	now := s.now().UTC()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		challenge, err := s.challenges.Insert(ctx, domain.Challenge{
			ID:              uuid.NewString(),
			Code:            s.newCode(),
			ChallengerID:    user.ID,
			ChallengerScore: user.Score,
			Status:          domain.ChallengePending,
			CreatedAt:       now,
			ExpiresAt:       now.Add(challengeHorizon),
		})
		if errors.Is(err, domain.ErrDuplicateCode) {
			continue
		}
		return challenge, err
	}
	return domain.Challenge{}, fmt.Errorf("%w after %d attempts", domain.ErrCodeGeneration, maxCodeAttempts)
}

// Resolve looks up a challenge by code and returns it joined with the
// challenger's username and live score. A pending challenge past its horizon
// is transitioned to expired in storage before the view is returned.
func (s *ChallengeService) Resolve(ctx context.Context, code string) (domain.ChallengeView, error) {
	challenge, err := s.challenges.ByCode(ctx, code)
	if err != nil {
		return domain.ChallengeView{}, err
	}

	if effective := challenge.EffectiveStatus(s.now()); effective != challenge.Status {
		if err := s.challenges.MarkExpired(ctx, challenge.ID); err != nil {
			return domain.ChallengeView{}, err
		}
		challenge.Status = effective
	}

	// The core never deletes users, but resolve must not trust that.
	user, err := s.users.ByID(ctx, challenge.ChallengerID)
	if err != nil {
		return domain.ChallengeView{}, err
	}

	return domain.ChallengeView{
		ID:                 challenge.ID,
		Code:               challenge.Code,
		ChallengerUsername: user.Username,
		ChallengerScore:    challenge.ChallengerScore,
		CurrentScore:       user.Score,
		Status:             challenge.Status,
		CreatedAt:          challenge.CreatedAt,
		ExpiresAt:          challenge.ExpiresAt,
	}, nil
}

// ListForUser returns the user's challenges (as challenger or recipient),
// newest first, capped at 100.
func (s *ChallengeService) ListForUser(ctx context.Context, username string) ([]domain.Challenge, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.challenges.ListForUser(ctx, user.ID, listChallengesLimit)
}

func (s *ChallengeService) newCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[s.rnd.Intn(len(codeAlphabet))]
	}
	return string(code)
}
