package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storewise/storefront-api/internal/config"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestJWTAuth(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret"}

	var gotPrincipal *Principal
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	authHandler := JWTAuth(cfg)(testHandler)

	validToken := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	subjectToken := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "user-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expiredToken := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKeyToken := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
		expectedUser   string
	}{
		{
			name:           "valid token",
			authorization:  "Bearer " + validToken,
			expectedStatus: http.StatusOK,
			expectedUser:   "user-1",
		},
		{
			name:           "subject claim fallback",
			authorization:  "Bearer " + subjectToken,
			expectedStatus: http.StatusOK,
			expectedUser:   "user-2",
		},
		{
			name:           "missing header",
			authorization:  "",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "not a bearer token",
			authorization:  "Basic abc123",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired token",
			authorization:  "Bearer " + expiredToken,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "wrong signing key",
			authorization:  "Bearer " + wrongKeyToken,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPrincipal = nil
			req := httptest.NewRequest(http.MethodPost, "/store-1/feedback", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			authHandler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedUser != "" {
				if gotPrincipal == nil {
					t.Fatal("expected principal in context")
				}
				if gotPrincipal.UserID != tt.expectedUser {
					t.Errorf("expected user %q, got %q", tt.expectedUser, gotPrincipal.UserID)
				}
			}
		})
	}
}
