package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/salescrm/auth/pkg/jwtx"
	"github.com/salescrm/auth/pkg/slogx"
)

// AuthnMiddleware gates requests on a valid bearer token. On success the
// decoded identity is attached to the request context; on failure the
// request is rejected with a 401 and never reaches the handler.
//
// Expired and forged tokens produce the same response body. The concrete
// verification failure is logged server-side only.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "not authorized, no token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				// Log whether this was a stale session or a forgery
				// attempt; the client sees one unified rejection.
				switch {
				case errors.Is(err, jwtx.ErrExpired):
					log.Info("rejected expired token", "err", err)
				default:
					log.Warn("token verification failed", "err", err)
				}
				writeBearerError(w, "not authorized, token invalid or expired")
				return
			}

			ctx = contextWithIdentity(ctx, Identity{
				UserID: claims.Subject,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-style rejection: WWW-Authenticate header plus the service's
// standard JSON error body.
func writeBearerError(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "invalid_token",
		"message": message,
	})
}
