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

// DestinationRepo is the bun-backed implementation of
// app.DestinationRepository.
type DestinationRepo struct {
	db *bun.DB
}

var _ app.DestinationRepository = (*DestinationRepo)(nil)

func NewDestinationRepo(db *bun.DB) *DestinationRepo {
	return &DestinationRepo{db: db}
}

func (r *DestinationRepo) ByID(ctx context.Context, id string) (domain.Destination, error) {
	row := new(destinationRow)
	err := r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Destination{}, domain.ErrDestinationNotFound
	}
	if err != nil {
		return domain.Destination{}, fmt.Errorf("select destination: %w", err)
	}
	return row.toDomain(), nil
}

func (r *DestinationRepo) Insert(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	row := destinationFromDomain(d)
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.Destination{}, fmt.Errorf("%w: %q", domain.ErrDuplicateAlias, d.Alias)
		}
		return domain.Destination{}, fmt.Errorf("insert destination: %w", err)
	}
	return d, nil
}

func (r *DestinationRepo) InsertMany(ctx context.Context, ds []domain.Destination) ([]domain.Destination, error) {
	if len(ds) == 0 {
		return nil, nil
	}
	rows := make([]destinationRow, len(ds))
	for i, d := range ds {
		rows[i] = destinationFromDomain(d)
	}
	if _, err := r.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateAlias
		}
		return nil, fmt.Errorf("insert destinations: %w", err)
	}
	return ds, nil
}

func (r *DestinationRepo) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*destinationRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count destinations: %w", err)
	}
	return count, nil
}
