package app

import (
	"context"

	"globetrotter-service/internal/domain"
)

// DestinationRepository abstracts how destination records are stored
// (in-memory, Postgres, etc).
type DestinationRepository interface {
	ByID(ctx context.Context, id string) (domain.Destination, error)
	Insert(ctx context.Context, d domain.Destination) (domain.Destination, error)
	InsertMany(ctx context.Context, ds []domain.Destination) ([]domain.Destination, error)
	Count(ctx context.Context) (int, error)
}

// CatalogRepository serves the (id, name) projection of the destination set,
// typically from a cache in front of the backing store.
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.DestinationRef, error)
}

// UserRepository abstracts user storage. IncrementScore must be atomic at the
// single-record granularity: a storage-level increment, never read-then-write.
type UserRepository interface {
	ByUsername(ctx context.Context, username string) (domain.User, error)
	ByID(ctx context.Context, id string) (domain.User, error)
	Insert(ctx context.Context, u domain.User) (domain.User, error)
	IncrementScore(ctx context.Context, username string, points, correct, incorrect int) error
	TopByScore(ctx context.Context, limit int) ([]domain.User, error)
}

// ChallengeRepository abstracts challenge storage. Insert returns
// domain.ErrDuplicateCode on a code collision so the service can regenerate.
type ChallengeRepository interface {
	Insert(ctx context.Context, c domain.Challenge) (domain.Challenge, error)
	ByCode(ctx context.Context, code string) (domain.Challenge, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Challenge, error)
	MarkExpired(ctx context.Context, id string) error
}

// Scorer is the scoring side effect invoked by answer verification.
type Scorer interface {
	Award(ctx context.Context, username string, correct bool) error
}
