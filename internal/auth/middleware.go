// ABOUTME: Bearer token middleware for the records API.
// ABOUTME: Checks the shared API token and puts the caller identity on the request context.

package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	apierrors "github.com/2389/realty/internal/errors"
)

type contextKey string

const userContextKey contextKey = "user"

// DefaultUser is the identity of callers that did not name themselves.
const DefaultUser = "default"

// Middleware requires "Authorization: Bearer <token>" when token is set.
// An empty token leaves the API open, which is what local development uses.
func Middleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := bearerToken(r.Header.Get("Authorization"))
			if token != "" && subtle.ConstantTimeCompare([]byte(bearer), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="realty"`)
				apierrors.WriteError(w, http.StatusUnauthorized, apierrors.ErrUnauthorized, "A valid API token is required")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, userFromToken(bearer))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) string {
	user, ok := ctx.Value(userContextKey).(string)
	if !ok || user == "" {
		return DefaultUser
	}
	return user
}

func bearerToken(authHeader string) string {
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// userFromToken names the caller. Tokens of the form "user:<name>" carry an
// explicit identity; any other token belongs to the console itself.
func userFromToken(token string) string {
	if token == "" {
		return DefaultUser
	}
	if name, ok := strings.CutPrefix(token, "user:"); ok && name != "" {
		return name
	}
	return "console"
}
