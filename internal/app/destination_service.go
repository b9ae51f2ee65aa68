package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"globetrotter-service/internal/domain"
	"github.com/google/uuid"
)

const defaultDifficulty = "medium"

// DestinationService validates and imports destination records. Import is the
// only write path for destinations; records are immutable afterwards.
type DestinationService struct {
	destinations DestinationRepository
	now          func() time.Time
}

func NewDestinationService(destinations DestinationRepository) *DestinationService {
	return &DestinationService{destinations: destinations, now: time.Now}
}

// Import validates and stores a single destination.
func (s *DestinationService) Import(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	prepared, err := s.prepare(d)
	if err != nil {
		return domain.Destination{}, err
	}
	return s.destinations.Insert(ctx, prepared)
}

// ImportMany validates and stores a batch, failing before any insert if a
// record is invalid.
func (s *DestinationService) ImportMany(ctx context.Context, ds []domain.Destination) ([]domain.Destination, error) {
	prepared := make([]domain.Destination, len(ds))
	for i, d := range ds {
		p, err := s.prepare(d)
		if err != nil {
			return nil, err
		}
		prepared[i] = p
	}
	return s.destinations.InsertMany(ctx, prepared)
}

func (s *DestinationService) prepare(d domain.Destination) (domain.Destination, error) {
	if strings.TrimSpace(d.Name) == "" {
		return domain.Destination{}, fmt.Errorf("%w: destination name must not be blank", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(d.Alias) == "" {
		return domain.Destination{}, fmt.Errorf("%w: destination alias must not be blank", domain.ErrInvalidArgument)
	}
	if len(d.Clues) == 0 {
		return domain.Destination{}, fmt.Errorf("%w: destination %q needs at least one clue", domain.ErrInvalidArgument, d.Alias)
	}
	if d.Difficulty == "" {
		d.Difficulty = defaultDifficulty
	}
	if d.FunFacts == nil {
		d.FunFacts = []string{}
	}
	d.ID = uuid.NewString()
	d.CreatedAt = s.now().UTC()
	return d, nil
}
