package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted signing-secret length in bytes.
// A shorter secret is a deployment defect and is rejected at construction.
const MinSecretLength = 32

// Signer is our interface for anything that can sign session claims.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a token string and gives you back the claims if it's
// legit. Callers must treat any error as a single "invalid token" outcome;
// the wrapped cause exists for logging only.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	// ErrInvalidToken is the unified rejection every verification failure
	// wraps. Handlers match on this one.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")

	// ErrWeakSecret reports a missing or too-short signing secret.
	ErrWeakSecret = fmt.Errorf("jwtx: signing secret must be at least %d bytes", MinSecretLength)
)

// HS256 signs and verifies session tokens with a single process-wide
// symmetric secret.
type HS256 struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewHS256 creates a signer/verifier from the configured secret. The secret
// is required; there is deliberately no fallback value.
func NewHS256(secret []byte, issuer string, ttl time.Duration) (*HS256, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &HS256{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (s *HS256) TTL() time.Duration { return s.ttl }

// Issue signs a fresh session token for the given user and role snapshot.
func (s *HS256) Issue(userID, role string, now time.Time) (string, error) {
	return s.Sign(NewSessionClaims(userID, role, s.issuer, s.ttl, now))
}

// Sign produces a compact HS256 JWT for the provided claims.
func (s *HS256) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, structure, and expiry. Every failure wraps
// ErrInvalidToken; the concrete cause (expired, bad signature, malformed)
// is also wrapped so callers can log the distinction without exposing it.
func (s *HS256) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, mapParseError(err))
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}

// mapParseError translates golang-jwt parse failures to our sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return err
	}
}
