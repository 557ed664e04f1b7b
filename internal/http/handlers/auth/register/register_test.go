package register

import (
	"context"
	"errors"
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

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, password, dob, image string) (*models.UserInfo, error) {
	args := m.Called(ctx, username, password, dob, image)
	if res := args.Get(0); res != nil {
		return res.(*models.UserInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"alice","password":"secret1","dob":"1990-01-01"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "secret1", "1990-01-01", "").
					Return(&models.UserInfo{Username: "alice", DateOfBirth: "1990-01-01"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"alice"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "слишком короткий пароль",
			body:           `{"username":"alice","password":"ab"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is too short`,
		},
		{
			name: "занятое имя пользователя",
			body: `{"username":"alice","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "secret1", "", "").
					Return(nil, models.ErrUserExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"user already exists"`,
		},
		{
			name: "внутренняя ошибка сервиса",
			body: `{"username":"alice","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "secret1", "", "").
					Return(nil, errors.New("storage unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
