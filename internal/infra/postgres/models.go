package postgres

import (
	"time"

	"globetrotter-service/internal/domain"
	"github.com/uptrace/bun"
)

type destinationRow struct {
	bun.BaseModel `bun:"table:destinations"`

	ID         string    `bun:"id,pk"`
	Alias      string    `bun:"alias"`
	Name       string    `bun:"name"`
	Clues      []string  `bun:"clues,array"`
	FunFacts   []string  `bun:"fun_facts,array"`
	Difficulty string    `bun:"difficulty"`
	CreatedAt  time.Time `bun:"created_at"`
}

func (r destinationRow) toDomain() domain.Destination {
	return domain.Destination{
		ID:         r.ID,
		Alias:      r.Alias,
		Name:       r.Name,
		Clues:      r.Clues,
		FunFacts:   r.FunFacts,
		Difficulty: r.Difficulty,
		CreatedAt:  r.CreatedAt,
	}
}

func destinationFromDomain(d domain.Destination) destinationRow {
	return destinationRow{
		ID:         d.ID,
		Alias:      d.Alias,
		Name:       d.Name,
		Clues:      d.Clues,
		FunFacts:   d.FunFacts,
		Difficulty: d.Difficulty,
		CreatedAt:  d.CreatedAt,
	}
}

type userRow struct {
	bun.BaseModel `bun:"table:users"`

	ID               string    `bun:"id,pk"`
	Username         string    `bun:"username"`
	Score            int       `bun:"score"`
	CorrectAnswers   int       `bun:"correct_answers"`
	IncorrectAnswers int       `bun:"incorrect_answers"`
	CreatedAt        time.Time `bun:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:               r.ID,
		Username:         r.Username,
		Score:            r.Score,
		CorrectAnswers:   r.CorrectAnswers,
		IncorrectAnswers: r.IncorrectAnswers,
		CreatedAt:        r.CreatedAt,
	}
}

type challengeRow struct {
	bun.BaseModel `bun:"table:challenges"`

	ID              string    `bun:"id,pk"`
	Code            string    `bun:"challenge_code"`
	ChallengerID    string    `bun:"challenger_id"`
	RecipientID     string    `bun:"recipient_id,nullzero"`
	ChallengerScore int       `bun:"challenger_score"`
	Status          string    `bun:"status"`
	CreatedAt       time.Time `bun:"created_at"`
	ExpiresAt       time.Time `bun:"expires_at"`
}

func (r challengeRow) toDomain() domain.Challenge {
	return domain.Challenge{
		ID:              r.ID,
		Code:            r.Code,
		ChallengerID:    r.ChallengerID,
		RecipientID:     r.RecipientID,
		ChallengerScore: r.ChallengerScore,
		Status:          domain.ChallengeStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		ExpiresAt:       r.ExpiresAt,
	}
}
