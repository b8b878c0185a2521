package cryptox

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new hashes. Raising it
// makes brute-forcing slower at the price of CPU per login.
const DefaultCost = 10

var (
	// ErrPasswordMismatch reports that the candidate password does not
	// reproduce the stored hash.
	ErrPasswordMismatch = errors.New("cryptox: password does not match")

	// ErrCorruptHash reports that the stored value is not a valid bcrypt
	// hash at all. This is a data defect, not a wrong password.
	ErrCorruptHash = errors.New("cryptox: corrupt password hash")
)

// HashPassword produces a salted bcrypt hash of the plaintext. The salt is
// generated per call, so hashing the same password twice yields different
// stored values, each independently verifiable.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext candidate against a stored bcrypt
// hash. A non-matching password returns ErrPasswordMismatch; a stored value
// that is not a bcrypt hash returns ErrCorruptHash.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}
}

// LooksLikeHash reports whether the stored value has the bcrypt prefix.
// Used as a cheap sanity check before attempting verification.
func LooksLikeHash(encodedHash string) bool {
	return strings.HasPrefix(encodedHash, "$2")
}
