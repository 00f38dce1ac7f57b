package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ASC uppercase", "ASC", "ASC"},
		{"asc lowercase", "asc", "ASC"},
		{"asc with spaces", "  asc  ", "ASC"},
		{"DESC uppercase", "DESC", "DESC"},
		{"desc lowercase", "desc", "DESC"},
		{"empty defaults to DESC", "", "DESC"},
		{"garbage defaults to DESC", "sideways", "DESC"},
		{"injection attempt defaults to DESC", "ASC; DROP TABLE users", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("allows whitelisted field", func(t *testing.T) {
		result := ValidateSortField("document_number", DocumentSortFields, "created_at")
		assert.Equal(t, "document_number", result)
	})

	t.Run("rejects non-whitelisted field", func(t *testing.T) {
		result := ValidateSortField("password_hash", DocumentSortFields, "created_at")
		assert.Equal(t, "created_at", result)
	})

	t.Run("rejects injection attempt", func(t *testing.T) {
		result := ValidateSortField("created_at; DELETE FROM payments", PaymentSortFields, "created_at")
		assert.Equal(t, "created_at", result)
	})

	t.Run("empty field returns default", func(t *testing.T) {
		result := ValidateSortField("", ContactSortFields, "name")
		assert.Equal(t, "name", result)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		result := ValidateSortField("  name  ", ContactSortFields, "created_at")
		assert.Equal(t, "name", result)
	})
}
