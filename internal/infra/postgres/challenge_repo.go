package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/domain"
	"github.com/uptrace/bun"
)

// ChallengeRepo is the bun-backed implementation of app.ChallengeRepository.
// The unique index on challenge_code turns a code collision into
// domain.ErrDuplicateCode, which the service treats as a regenerate signal.
type ChallengeRepo struct {
	db *bun.DB
}

var _ app.ChallengeRepository = (*ChallengeRepo)(nil)

func NewChallengeRepo(db *bun.DB) *ChallengeRepo {
	return &ChallengeRepo{db: db}
}

func (r *ChallengeRepo) Insert(ctx context.Context, c domain.Challenge) (domain.Challenge, error) {
	row := challengeRow{
		ID:              c.ID,
		Code:            c.Code,
		ChallengerID:    c.ChallengerID,
		RecipientID:     c.RecipientID,
		ChallengerScore: c.ChallengerScore,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		ExpiresAt:       c.ExpiresAt,
	}
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.Challenge{}, fmt.Errorf("%w: %q", domain.ErrDuplicateCode, c.Code)
		}
		return domain.Challenge{}, fmt.Errorf("insert challenge: %w", err)
	}
	return c, nil
}

func (r *ChallengeRepo) ByCode(ctx context.Context, code string) (domain.Challenge, error) {
	row := new(challengeRow)
	err := r.db.NewSelect().Model(row).Where("challenge_code = ?", code).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Challenge{}, domain.ErrChallengeNotFound
	}
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("select challenge: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ChallengeRepo) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Challenge, error) {
	var rows []challengeRow
	err := r.db.NewSelect().
		Model(&rows).
		Where("challenger_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	challenges := make([]domain.Challenge, len(rows))
	for i, row := range rows {
		challenges[i] = row.toDomain()
	}
	return challenges, nil
}

func (r *ChallengeRepo) MarkExpired(ctx context.Context, id string) error {
	_, err := r.db.NewUpdate().
		Model((*challengeRow)(nil)).
		Set("status = ?", string(domain.ChallengeExpired)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mark challenge expired: %w", err)
	}
	return nil
}
