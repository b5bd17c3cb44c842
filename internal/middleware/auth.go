package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storewise/storefront-api/internal/config"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the identity resolved from a verified bearer token. Tokens
// are minted by the external identity provider; this service only verifies.
type Principal struct {
	UserID string
	Email  string
}

// PrincipalFromContext returns the authenticated principal, or nil when the
// request was not authenticated. Handlers must fail closed on nil.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

// WithPrincipal attaches a principal to ctx. Exposed for tests.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthenticated"})
}

// JWTAuth verifies the Authorization bearer token and stores the resolved
// principal in the request context. Requests without a valid token are
// rejected with 403, matching the unauthenticated contract of the API.
func JWTAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeUnauthenticated(w)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				writeUnauthenticated(w)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeUnauthenticated(w)
				return
			}
			userID, _ := claims["user_id"].(string)
			if userID == "" {
				// Some providers use the standard subject claim instead.
				userID, _ = claims["sub"].(string)
			}
			if userID == "" {
				writeUnauthenticated(w)
				return
			}
			email, _ := claims["email"].(string)

			ctx := WithPrincipal(r.Context(), &Principal{UserID: userID, Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
