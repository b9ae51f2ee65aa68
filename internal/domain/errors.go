package domain

import "errors"

var (
	// ErrInvalidArgument marks malformed or blank caller input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoDestinations is returned when a question is requested against an empty destination set.
	ErrNoDestinations = errors.New("no destinations available")
	// ErrDestinationNotFound indicates a destination id did not resolve.
	ErrDestinationNotFound = errors.New("destination not found")
	// ErrUserNotFound indicates an unknown username or user id.
	ErrUserNotFound = errors.New("user not found")
	// ErrChallengeNotFound indicates an unknown challenge code.
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrDuplicateAlias indicates a destination alias is already taken.
	ErrDuplicateAlias = errors.New("destination alias already exists")
	// ErrDuplicateUsername indicates a username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateCode indicates a challenge code collision; callers regenerate and retry.
	ErrDuplicateCode = errors.New("challenge code already exists")
	// ErrCodeGeneration is returned when code generation exhausts its retry budget.
	ErrCodeGeneration = errors.New("could not allocate a unique challenge code")
)
