package register

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

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, email, rawPassword string) (*auth.AuthResult, error) {
	args := m.Called(ctx, username, email, rawPassword)
	if res := args.Get(0); res != nil {
		return res.(*auth.AuthResult), args.Error(1)
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
			name: "successful registration",
			body: `{"name":"alice","email":"alice@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret123").
					Return(&auth.AuthResult{
						Token: "jwt-token",
						User:  &models.User{UID: "uid-1", Username: "alice", Email: "alice@example.com"},
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name:           "invalid JSON",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "short password",
			body:           `{"name":"alice","email":"alice@example.com","password":"123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Password is too short",
		},
		{
			name:           "short name",
			body:           `{"name":"a","email":"alice@example.com","password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Name is too short",
		},
		{
			name:           "invalid email",
			body:           `{"name":"alice","email":"not-an-email","password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Email must be a valid email address",
		},
		{
			name: "duplicate email",
			body: `{"name":"alice","email":"alice@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret123").
					Return(nil, apperr.Validation("user with this email or name already exists"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "user with this email or name already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
