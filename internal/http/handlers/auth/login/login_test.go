package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (*models.UserInfo, string, error) {
	args := m.Called(ctx, username, password)
	if res := args.Get(0); res != nil {
		return res.(*models.UserInfo), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная авторизация",
			body: `{"username":"alice","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "secret1").
					Return(&models.UserInfo{Username: "alice"}, "jwt-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username"`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует пароль",
			body:           `{"username":"alice"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "неверные учетные данные",
			body: `{"username":"alice","password":"wrongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "wrongpass").
					Return(nil, "", models.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid credentials"`,
		},
		{
			name: "неизвестный пользователь тоже 401",
			body: `{"username":"ghost","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "ghost", "secret1").
					Return(nil, "", fmt.Errorf("services.auth.Login: %w", models.ErrInvalidCredentials))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid credentials"`,
		},
		{
			name: "внутренняя ошибка сервиса",
			body: `{"username":"alice","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "secret1").
					Return(nil, "", errors.New("storage unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to login"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
