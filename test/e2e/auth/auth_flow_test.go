package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	authhttp "github.com/salescrm/auth/internal/auth/http"
	"github.com/salescrm/auth/internal/auth/service"
	"github.com/salescrm/auth/internal/auth/store/drivers/sqlite"
	"github.com/salescrm/auth/pkg/authapi"
	"github.com/salescrm/auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// startServer wires the real router against an in-memory store and serves
// it over a local listener, so the flow below exercises the same stack the
// binary runs.
func startServer(t *testing.T) *authapi.Client {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "salescrm-auth", time.Hour)
	require.NoError(t, err)

	router := authhttp.NewRouter(tokens, "e2e", st, slog.New(slog.DiscardHandler))
	router.AuthService = &service.AuthService{Store: st, Tokens: tokens}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return authapi.NewClient(srv.URL)
}

func TestAuthFlow(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	// Register a fresh account. The email arrives with stray casing and
	// whitespace and must be stored normalized.
	reg, err := client.Register(ctx, authapi.RegisterRequest{
		Name:     "Ana",
		Email:    " Ana@Example.com ",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)
	require.NotEmpty(t, reg.User.ID)
	require.Equal(t, "ana@example.com", reg.User.Email)
	require.Equal(t, "user", reg.User.Role)

	// Duplicate registration conflicts regardless of email casing.
	_, err = client.Register(ctx, authapi.RegisterRequest{
		Name:     "Ana Again",
		Email:    "ANA@EXAMPLE.COM",
		Password: "another password",
	})
	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.StatusCode)
	require.Equal(t, authapi.ErrorCodeConflict, apiErr.Code)

	// Login with the registered credentials yields a usable token.
	login, err := client.Login(ctx, authapi.LoginRequest{
		Email:    "ana@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.Equal(t, reg.User.ID, login.User.ID)

	// A wrong password and an unknown account fail identically, so a
	// caller cannot probe which addresses exist.
	_, wrongPassErr := client.Login(ctx, authapi.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong password",
	})
	_, unknownUserErr := client.Login(ctx, authapi.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong password",
	})
	var wrongPass, unknownUser *authapi.APIError
	require.ErrorAs(t, wrongPassErr, &wrongPass)
	require.ErrorAs(t, unknownUserErr, &unknownUser)
	require.Equal(t, 401, wrongPass.StatusCode)
	require.Equal(t, *wrongPass, *unknownUser)

	// The token from login opens the protected profile route.
	profile, err := client.Profile(ctx, login.Token)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, profile.User.ID)
	require.Equal(t, "ana@example.com", profile.User.Email)

	// No token and a damaged token are both rejected with 401.
	_, err = client.Profile(ctx, "")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
	require.Equal(t, authapi.ErrorCodeInvalidToken, apiErr.Code)

	_, err = client.Profile(ctx, login.Token[:len(login.Token)-5])
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
	require.Equal(t, authapi.ErrorCodeInvalidToken, apiErr.Code)
}

func TestAuthFlowPasswordRotation(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, authapi.RegisterRequest{
		Name:     "Ben",
		Email:    "ben@example.com",
		Password: "original password",
		Role:     "manager",
	})
	require.NoError(t, err)
	require.Equal(t, "manager", reg.User.Role)

	// Rotation requires the current password.
	err = client.ChangePassword(ctx, reg.Token, authapi.ChangePasswordRequest{
		CurrentPassword: "not the password",
		NewPassword:     "replacement password",
	})
	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)

	err = client.ChangePassword(ctx, reg.Token, authapi.ChangePasswordRequest{
		CurrentPassword: "original password",
		NewPassword:     "replacement password",
	})
	require.NoError(t, err)

	// The old password no longer works, the new one does.
	_, err = client.Login(ctx, authapi.LoginRequest{Email: "ben@example.com", Password: "original password"})
	require.Error(t, err)

	login, err := client.Login(ctx, authapi.LoginRequest{Email: "ben@example.com", Password: "replacement password"})
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, login.User.ID)
}

func TestAuthFlowRejectsBadInput(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, authapi.RegisterRequest{
		Name:  "No Password",
		Email: "np@example.com",
	})
	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Equal(t, authapi.ErrorCodeValidation, apiErr.Code)

	_, err = client.Register(ctx, authapi.RegisterRequest{
		Name:     "Bad Role",
		Email:    "br@example.com",
		Password: "some password",
		Role:     "superuser",
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)

	_, err = client.Login(ctx, authapi.LoginRequest{Email: "np@example.com"})
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 400, apiErr.StatusCode)
}
