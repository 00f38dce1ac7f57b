package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	t.Run("creates active customer", func(t *testing.T) {
		c, err := NewContact("Acme Traders", ContactTypeCustomer, "acme@example.com", "9876543210", "12 MG Road", "Bengaluru", "Karnataka", "560001", "29ABCDE1234F1Z5")
		require.NoError(t, err)
		assert.Equal(t, ContactTypeCustomer, c.Type)
		assert.True(t, c.IsActive)
		assert.NotEqual(t, "", c.GetID().String())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewContact("", ContactTypeCustomer, "", "", "", "", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewContact("Acme", ContactType("partner"), "", "", "", "", "", "", "")
		assert.Error(t, err)
	})
}

func TestContact_Update(t *testing.T) {
	c, err := NewContact("Acme Traders", ContactTypeVendor, "", "", "", "", "", "", "")
	require.NoError(t, err)

	require.NoError(t, c.Update("Acme Supplies", "sales@acme.example", "", "", "", "", "", ""))
	assert.Equal(t, "Acme Supplies", c.Name)
	assert.Equal(t, ContactTypeVendor, c.Type)

	assert.Error(t, c.Update("", "", "", "", "", "", "", ""))
}

func TestContact_ActivationCycle(t *testing.T) {
	c, err := NewContact("Acme", ContactTypeCustomer, "", "", "", "", "", "", "")
	require.NoError(t, err)

	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive)
	assert.Error(t, c.Deactivate())

	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive)
	assert.Error(t, c.Activate())
}
