package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"globetrotter-service/internal/domain"
	"github.com/google/uuid"
)

// UserService handles registration and lookup of player identities.
type UserService struct {
	users UserRepository
	now   func() time.Time
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users, now: time.Now}
}

// Register creates a user with zeroed counters. Registration is idempotent:
// an already-taken username returns the stored record instead of an error.
func (s *UserService) Register(ctx context.Context, username string) (domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return domain.User{}, fmt.Errorf("%w: username must not be blank", domain.ErrInvalidArgument)
	}

	user, err := s.users.Insert(ctx, domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.now().UTC(),
	})
	if errors.Is(err, domain.ErrDuplicateUsername) {
		return s.users.ByUsername(ctx, username)
	}
	return user, err
}

// Get looks up a user by username.
func (s *UserService) Get(ctx context.Context, username string) (domain.User, error) {
	return s.users.ByUsername(ctx, username)
}
