package postgres

import (
	"context"
	"fmt"

	"globetrotter-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader reads the (id, name) destination projection from Postgres.
// It sits behind the catalog cache, so it only runs on cache misses.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.DestinationRef, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, name FROM destinations ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var refs []domain.DestinationRef
	for rows.Next() {
		var ref domain.DestinationRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return refs, nil
}
