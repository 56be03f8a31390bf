package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain/user"
)

func TestNewEmail(t *testing.T) {
	t.Run("valid addresses", func(t *testing.T) {
		for _, raw := range []string{"alice@example.com", "a.b+tag@sub.example.org"} {
			email, err := user.NewEmail(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, raw, email.String())
		}
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		email, err := user.NewEmail("  alice@example.com  ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email.String())
	})

	t.Run("invalid addresses", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "plainaddress", "@example.com", "alice@", "Alice <alice@example.com>"} {
			_, err := user.NewEmail(raw)
			assert.ErrorIs(t, err, user.ErrInvalidEmail, "raw=%q", raw)
		}
	})
}
