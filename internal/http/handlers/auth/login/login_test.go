package login

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/models"
	"github.com/gourav1008/NotesApp/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, rawPassword string) (*auth.AuthResult, error) {
	args := m.Called(ctx, email, rawPassword)
	if res := args.Get(0); res != nil {
		return res.(*auth.AuthResult), args.Error(1)
	}
	return nil, args.Error(1)
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
			name: "successful login",
			body: `{"email":"bob@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "bob@example.com", "secret123").
					Return(&auth.AuthResult{
						Token: "jwt-token",
						User:  &models.User{UID: "uid-2", Username: "bob"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name: "invalid credentials",
			body: `{"email":"bob@example.com","password":"wrong"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "bob@example.com", "wrong").
					Return(nil, apperr.Unauthorized("invalid credentials"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid credentials",
		},
		{
			name:           "invalid JSON",
			body:           `{`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "empty password",
			body:           `{"email":"bob@example.com","password":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Password is a required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
