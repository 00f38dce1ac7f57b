package persistence

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error code for unique constraint violations
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
// Used to detect document number collisions between concurrent writers so
// the allocation can be retried.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
