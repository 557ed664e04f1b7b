package create

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

	"github.com/magabrotheeeer/social-feed/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, author, title, content, status, postType string) (*models.Post, error) {
	args := m.Called(ctx, author, title, content, status, postType)
	if res := args.Get(0); res != nil {
		return res.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное создание поста",
			body:     `{"title":"hello","content":"first post"}`,
			username: "alice",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "alice", "hello", "first post", "", "").
					Return(&models.Post{ID: 1, Title: "hello", Content: "first post", Author: "alice"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"author":"alice"`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"title":"hello","content":"first post"}`,
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "отсутствует заголовок",
			body:           `{"content":"first post"}`,
			username:       "alice",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Title is a required field`,
		},
		{
			name:     "внутренняя ошибка сервиса",
			body:     `{"title":"hello","content":"first post"}`,
			username: "alice",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "alice", "hello", "first post", "", "").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to create post"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(tt.body))
			if tt.username != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.username))
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
