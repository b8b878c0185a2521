package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/salescrm/auth/internal/auth/domain"
	"github.com/salescrm/auth/internal/auth/store"
	"github.com/salescrm/auth/pkg/cryptox"
	"github.com/salescrm/auth/pkg/idx"
	"github.com/salescrm/auth/pkg/jwtx"
	"github.com/salescrm/auth/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both "no such email" and "wrong
	// password". Callers must not be able to tell which one happened.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrEmailTaken reports a duplicate registration.
	ErrEmailTaken = errors.New("email_taken")

	// ErrCorruptCredential reports a stored hash that cannot be verified
	// at all. An internal defect, never a user error.
	ErrCorruptCredential = errors.New("corrupt_credential")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// AuthResult is what a successful register or login yields.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

// AuthService implements registration and login on top of the user store,
// the password hasher, and the session-token signer.
type AuthService struct {
	Store  store.Store
	Tokens *jwtx.HS256
}

// Register creates a new user record and issues a session token for it.
// The password is hashed before anything is persisted; the plaintext never
// reaches the store.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "is required"}
	}

	userRole := domain.DefaultRole
	if role != "" {
		userRole = domain.Role(role)
		if !userRole.Valid() {
			return nil, &ValidationError{Field: "role", Reason: "is not a known role"}
		}
	}

	// Early duplicate check for a friendly error; the unique index is the
	// real guarantee and a lookup/insert race falls through to the same
	// conflict below.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         userRole,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(user.ID, user.Role.String(), time.Now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login verifies credentials and issues a session token. A wrong password
// and an unknown email return the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)

	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "is required"}
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrCorruptHash) {
			return nil, fmt.Errorf("%w: user %s: %v", ErrCorruptCredential, user.ID, err)
		}
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID, user.Role.String(), time.Now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// ChangePassword verifies the current password and writes a hash of the
// replacement. Hashing happens here, always, never in the storage layer.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return &ValidationError{Field: "current_password", Reason: "is required"}
	}
	if newPassword == "" {
		return &ValidationError{Field: "new_password", Reason: "is required"}
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrCorruptHash) {
			return fmt.Errorf("%w: user %s: %v", ErrCorruptCredential, user.ID, err)
		}
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("user_id", userID))
	return nil
}

// NormalizeEmail trims whitespace and lowercases, matching how emails are
// stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
