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

// UserRepo is the bun-backed implementation of app.UserRepository.
type UserRepo struct {
	db *bun.DB
}

var _ app.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *bun.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) ByUsername(ctx context.Context, username string) (domain.User, error) {
	row := new(userRow)
	err := r.db.NewSelect().Model(row).Where("username = ?", username).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (domain.User, error) {
	row := new(userRow)
	err := r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepo) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	row := userRow{
		ID:               u.ID,
		Username:         u.Username,
		Score:            u.Score,
		CorrectAnswers:   u.CorrectAnswers,
		IncorrectAnswers: u.IncorrectAnswers,
		CreatedAt:        u.CreatedAt,
	}
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("%w: %q", domain.ErrDuplicateUsername, u.Username)
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// IncrementScore applies the counter deltas in a single UPDATE so concurrent
// awards to the same user cannot lose increments.
func (r *UserRepo) IncrementScore(ctx context.Context, username string, points, correct, incorrect int) error {
	res, err := r.db.NewUpdate().
		Model((*userRow)(nil)).
		Set("score = score + ?", points).
		Set("correct_answers = correct_answers + ?", correct).
		Set("incorrect_answers = incorrect_answers + ?", incorrect).
		Where("username = ?", username).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("increment score: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment score: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TopByScore orders by score descending with insertion order breaking ties.
func (r *UserRepo) TopByScore(ctx context.Context, limit int) ([]domain.User, error) {
	var rows []userRow
	err := r.db.NewSelect().
		Model(&rows).
		Order("score DESC").
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}
	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.toDomain()
	}
	return users, nil
}
