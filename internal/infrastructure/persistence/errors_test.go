package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("detects pq unique violation", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("detects wrapped pq unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505"})
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("detects gorm duplicated key", func(t *testing.T) {
		assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		err := &pq.Error{Code: "23503"} // foreign key violation
		assert.False(t, isUniqueViolation(err))
	})

	t.Run("ignores unrelated errors", func(t *testing.T) {
		assert.False(t, isUniqueViolation(errors.New("connection refused")))
		assert.False(t, isUniqueViolation(nil))
	})
}
