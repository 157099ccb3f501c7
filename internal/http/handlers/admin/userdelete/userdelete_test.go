package userdelete

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/middlewarectx"
	"github.com/gourav1008/NotesApp/internal/models"
)

// MockService реализует интерфейс userdelete.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) DeleteUser(ctx context.Context, adminUID, targetUID, confirmation string) error {
	args := m.Called(ctx, adminUID, targetUID, confirmation)
	return args.Error(0)
}

const (
	adminUID  = "11111111-1111-1111-1111-111111111111"
	targetUID = "22222222-2222-2222-2222-222222222222"
)

func TestUserDeleteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful delete with confirmation",
			body: `{"confirmation":"DELETE"}`,
			setupMock: func(m *MockService) {
				m.On("DeleteUser", mock.Anything, adminUID, targetUID, "DELETE").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "user and all associated data deleted",
		},
		{
			name: "missing confirmation",
			body: `{}`,
			setupMock: func(m *MockService) {
				m.On("DeleteUser", mock.Anything, adminUID, targetUID, "").
					Return(apperr.Validation(`confirmation value must be exactly "DELETE"`))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "confirmation value must be exactly",
		},
		{
			name:           "invalid JSON",
			body:           `{`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name: "user not found",
			body: `{"confirmation":"DELETE"}`,
			setupMock: func(m *MockService) {
				m.On("DeleteUser", mock.Anything, adminUID, targetUID, "DELETE").
					Return(apperr.NotFound("user not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+targetUID,
				strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", targetUID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.CurrentUser,
				&models.User{UID: adminUID, Role: models.RoleAdmin})
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
