package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "test-issuer"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestHS256(t *testing.T, ttl time.Duration) *HS256 {
	t.Helper()
	s, err := NewHS256(testSecret, testIssuer, ttl)
	require.NoError(t, err)
	return s
}

func TestNewHS256RejectsWeakSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256(nil, testIssuer, time.Hour)
	require.ErrorIs(t, err, ErrWeakSecret)

	_, err = NewHS256([]byte("too-short"), testIssuer, time.Hour)
	require.ErrorIs(t, err, ErrWeakSecret)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestHS256(t, time.Hour)
	now := time.Now()

	token, err := s.Issue("user-1", "admin", now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, testIssuer, claims.Issuer)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	s := newTestHS256(t, time.Hour)
	token, err := s.Issue("user-1", "user", time.Now())
	require.NoError(t, err)

	t.Run("flipped payload character", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		_, err := s.Verify(tampered)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("truncated by one character", func(t *testing.T) {
		_, err := s.Verify(token[:len(token)-1])
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, ErrInvalidSig)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := s.Verify("not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, ErrMalformed)
	})
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	s := newTestHS256(t, time.Hour)

	// Issue a token whose whole validity window is in the past.
	token, err := s.Issue("user-1", "user", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	t.Parallel()

	s := newTestHS256(t, time.Hour)
	other, err := NewHS256([]byte("ffffffffffffffffffffffffffffffff"), testIssuer, time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("user-1", "user", time.Now())
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	s := newTestHS256(t, time.Hour)
	foreign, err := NewHS256(testSecret, "someone-else", time.Hour)
	require.NoError(t, err)

	token, err := foreign.Issue("user-1", "user", time.Now())
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestClaimsValidateExpiry(t *testing.T) {
	t.Parallel()

	t.Run("valid window", func(t *testing.T) {
		c := NewSessionClaims("u", "user", testIssuer, time.Hour, time.Now())
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired", func(t *testing.T) {
		c := NewSessionClaims("u", "user", testIssuer, time.Hour, time.Now().Add(-2*time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := NewSessionClaims("u", "user", testIssuer, time.Hour, time.Now().Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})
}
