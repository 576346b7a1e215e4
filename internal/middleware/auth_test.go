package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edumorph/backend/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func accessToken(t *testing.T, userID int) string {
	return signTestToken(t, jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

func authTestHandler(t *testing.T, expectedUserID int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, expectedUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)
	handler := AuthMiddleware(validator)(authTestHandler(t, 7))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, 7))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)
	handler := AuthMiddleware(validator)(authTestHandler(t, 7))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: accessToken(t, 7)})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(req *http.Request)
		expected string
	}{
		{
			name:     "authorization header",
			setup:    func(req *http.Request) { req.Header.Set("Authorization", "Bearer abc123") },
			expected: "abc123",
		},
		{
			name:     "cookie fallback",
			setup:    func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"}) },
			expected: "from-cookie",
		},
		{
			name: "header wins over cookie",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer from-header")
				req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
			},
			expected: "from-header",
		},
		{
			name:     "malformed header ignored",
			setup:    func(req *http.Request) { req.Header.Set("Authorization", "abc123") },
			expected: "",
		},
		{
			name:     "no credentials",
			setup:    func(req *http.Request) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			assert.Equal(t, tt.expected, BearerToken(req))
		})
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	validator := auth.NewTokenValidator(testSecret)

	tests := []struct {
		name  string
		setup func(t *testing.T, req *http.Request)
	}{
		{
			name:  "no token",
			setup: func(t *testing.T, req *http.Request) {},
		},
		{
			name: "malformed token",
			setup: func(t *testing.T, req *http.Request) {
				req.Header.Set("Authorization", "Bearer not-a-token")
			},
		},
		{
			name: "wrong secret",
			setup: func(t *testing.T, req *http.Request) {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"user_id": 7, "type": "access", "exp": time.Now().Add(time.Hour).Unix(),
				})
				signed, err := token.SignedString([]byte("other-secret"))
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+signed)
			},
		},
		{
			name: "refresh token rejected",
			setup: func(t *testing.T, req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+signTestToken(t, jwt.MapClaims{
					"user_id": 7, "type": "refresh", "exp": time.Now().Add(time.Hour).Unix(),
				}))
			},
		},
		{
			name: "expired token",
			setup: func(t *testing.T, req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+signTestToken(t, jwt.MapClaims{
					"user_id": 7, "type": "access", "exp": time.Now().Add(-time.Hour).Unix(),
				}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(t, req)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
