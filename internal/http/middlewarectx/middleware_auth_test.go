package middlewarectx_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/social-feed/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Mock for the auth service
type authServiceMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *authServiceMock) ValidateToken(ctx context.Context, token string) (string, error) {
	return m.ValidateTokenFunc(ctx, token)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		authHeader     string
		validateResult string
		validateErr    error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer badtoken",
			validateErr:    fmt.Errorf("services.auth.ValidateToken: %w", models.ErrTokenInvalid),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer oldtoken",
			validateErr:    fmt.Errorf("services.auth.ValidateToken: %w", models.ErrTokenExpired),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer validtoken",
			validateResult: "testuser",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false

			// Test handler which checks context values
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				username := r.Context().Value(middlewarectx.User)
				assert.Equal(t, "testuser", username)
				w.WriteHeader(http.StatusOK)
			})

			svc := &authServiceMock{
				ValidateTokenFunc: func(_ context.Context, token string) (string, error) {
					if tt.validateErr != nil {
						return "", tt.validateErr
					}
					return tt.validateResult, nil
				},
			}
			mw := middlewarectx.JWTMiddleware(svc, logger)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			mw.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
