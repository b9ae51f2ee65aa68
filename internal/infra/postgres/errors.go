package postgres

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	return false
}
