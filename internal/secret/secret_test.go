package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	t.Run("nil box passes values through", func(t *testing.T) {
		box, err := NewBox("")
		require.NoError(t, err)
		assert.Nil(t, box)

		sealed, err := box.Seal("payout-123")
		require.NoError(t, err)
		assert.Equal(t, "payout-123", sealed)

		opened, err := box.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "payout-123", opened)
	})

	t.Run("seals and opens with a generated key", func(t *testing.T) {
		key, err := GenerateKey()
		require.NoError(t, err)
		box, err := NewBox(key)
		require.NoError(t, err)

		sealed, err := box.Seal("payout-123")
		require.NoError(t, err)
		assert.NotEqual(t, "payout-123", sealed)

		opened, err := box.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "payout-123", opened)
	})

	t.Run("empty values stay empty", func(t *testing.T) {
		key, err := GenerateKey()
		require.NoError(t, err)
		box, err := NewBox(key)
		require.NoError(t, err)

		sealed, err := box.Seal("")
		require.NoError(t, err)
		assert.Empty(t, sealed)
	})

	t.Run("rejects token sealed with another key", func(t *testing.T) {
		k1, err := GenerateKey()
		require.NoError(t, err)
		k2, err := GenerateKey()
		require.NoError(t, err)
		b1, _ := NewBox(k1)
		b2, _ := NewBox(k2)

		sealed, err := b1.Seal("payout-123")
		require.NoError(t, err)

		_, err = b2.Open(sealed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		_, err := NewBox("not-a-key")
		assert.Error(t, err)
	})
}
