package middlewarectx

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
)

// MockAuthenticator реализует интерфейс Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestAuthMiddleware(t *testing.T) {
	activeUser := &models.User{UID: "uid-1", Role: models.RoleUser}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockAuthenticator)
		expectedStatus int
		expectedBody   string
		expectNext     bool
	}{
		{
			name:       "valid token passes request",
			authHeader: "Bearer good-token",
			setupMock: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "good-token").Return(activeUser, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMock:      func(_ *MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "missing or invalid authorization header",
		},
		{
			name:           "header without Bearer prefix",
			authHeader:     "Token abc",
			setupMock:      func(_ *MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "missing or invalid authorization header",
		},
		{
			name:       "expired token",
			authHeader: "Bearer stale-token",
			setupMock: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "stale-token").
					Return(nil, apperr.Unauthorized("invalid or expired token"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
		{
			name:       "blocked user gets isBlocked flag",
			authHeader: "Bearer blocked-token",
			setupMock: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "blocked-token").
					Return(nil, apperr.Blocked())
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"isBlocked":true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockAuthenticator)
			tt.setupMock(service)

			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				nextCalled = true
				// пользователь доступен обработчику через контекст
				assert.Equal(t, activeUser, UserFromContext(r.Context()))
			})

			handler := Auth(service, testLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectedBody != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
					"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			}
			service.AssertExpectations(t)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		user           *models.User
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "admin passes",
			user:           &models.User{UID: "uid-1", Role: models.RoleAdmin},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "regular user gets 403",
			user:           &models.User{UID: "uid-2", Role: models.RoleUser},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no user in context",
			user:           nil,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			})
			handler := RequireAdmin(testLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), CurrentUser, tt.user))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
		})
	}
}

func TestRequireNotBlocked(t *testing.T) {
	tests := []struct {
		name           string
		user           *models.User
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "active user passes",
			user:           &models.User{UID: "uid-1", Role: models.RoleUser},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "blocked user gets 403 with flag",
			user:           &models.User{UID: "uid-2", Role: models.RoleUser, IsBlocked: true},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			})
			handler := RequireNotBlocked(testLogger())(next)

			req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
			req = req.WithContext(context.WithValue(req.Context(), CurrentUser, tt.user))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if !tt.expectNext {
				assert.Contains(t, w.Body.String(), `"isBlocked":true`)
			}
		})
	}
}
