package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const claimsContextKey contextKey = "shieldops_claims"

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsContextKey).(*Claims)
	return c, ok
}

// RejectFunc writes the response for a request the guard turned away.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

const bearerPrefix = "Bearer "

// BearerToken extracts the credential from an "Authorization: Bearer ..." header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	tok := strings.TrimPrefix(h, bearerPrefix)
	return tok, tok != ""
}

// Guard admits requests whose bearer credential the issuer accepts and stores
// the decoded claims in the request context.
func Guard(issuer Issuer, reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				reject(w, r, ErrUnauthenticated)
				return
			}
			claims, err := issuer.Verify(raw)
			if err != nil {
				reject(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole only lets callers whose verified claims carry one of roles
// through. Placeholder claims never pass: their role is whatever the caller
// wrote into the token. It must run behind Guard.
func RequireRole(reject RejectFunc, roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				reject(w, r, ErrUnauthenticated)
				return
			}
			if !claims.Verified {
				reject(w, r, ErrForbidden)
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				reject(w, r, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
