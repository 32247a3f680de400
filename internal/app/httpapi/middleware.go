package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pobimgroup/election-dashboard/internal/domain"
)

// sessionCookie carries the signed session token for browser clients; API
// clients may send the same token as a bearer header instead.
const sessionCookie = "session_token"

type contextKey struct{}

var userKey contextKey

// requireAuth parses the session token and stashes the user it was issued
// for in the request context. No token or a bad token is a 401.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				raw = c.Value
			}
		}
		if raw == "" {
			respondError(w, fmt.Errorf("%w: missing session token", domain.ErrUnauthenticated))
			return
		}

		claims, err := a.issuer.Parse(raw)
		if err != nil {
			respondError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, claims.User())))
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// currentUser returns the authenticated user placed by requireAuth. Calling
// it outside an authenticated route yields the zero user.
func currentUser(r *http.Request) domain.User {
	u, _ := r.Context().Value(userKey).(domain.User)
	return u
}
