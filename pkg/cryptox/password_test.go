package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.True(t, LooksLikeHash(hash))
	require.NotEqual(t, "secret123", hash)

	require.NoError(t, VerifyPassword("secret123", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	// Each call embeds a fresh salt, so the stored values differ but both
	// still verify the original password.
	require.NotEqual(t, first, second)
	require.NoError(t, VerifyPassword("secret123", first))
	require.NoError(t, VerifyPassword("secret123", second))
}

func TestVerifyPasswordMismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	err = VerifyPassword("battery staple", hash)
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestVerifyPasswordCorruptHash(t *testing.T) {
	t.Parallel()

	t.Run("plaintext stored by mistake", func(t *testing.T) {
		err := VerifyPassword("secret123", "secret123")
		require.ErrorIs(t, err, ErrCorruptHash)
	})

	t.Run("empty stored value", func(t *testing.T) {
		err := VerifyPassword("secret123", "")
		require.ErrorIs(t, err, ErrCorruptHash)
	})

	t.Run("truncated hash", func(t *testing.T) {
		hash, err := HashPassword("secret123")
		require.NoError(t, err)

		err = VerifyPassword("secret123", hash[:len(hash)/2])
		require.ErrorIs(t, err, ErrCorruptHash)
	})
}
