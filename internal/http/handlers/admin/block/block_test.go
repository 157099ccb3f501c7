package block

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

// MockService реализует интерфейс block.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) BlockUser(ctx context.Context, adminUID, targetUID, reason string) (*models.User, error) {
	args := m.Called(ctx, adminUID, targetUID, reason)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

const (
	adminUID  = "11111111-1111-1111-1111-111111111111"
	targetUID = "22222222-2222-2222-2222-222222222222"
)

func TestBlockHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlID          string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "successful block",
			urlID: targetUID,
			body:  `{"reason":"spam"}`,
			setupMock: func(m *MockService) {
				m.On("BlockUser", mock.Anything, adminUID, targetUID, "spam").
					Return(&models.User{UID: targetUID, IsBlocked: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"is_blocked":true`,
		},
		{
			name:  "block without request body",
			urlID: targetUID,
			body:  "",
			setupMock: func(m *MockService) {
				m.On("BlockUser", mock.Anything, adminUID, targetUID, "").
					Return(&models.User{UID: targetUID, IsBlocked: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"is_blocked":true`,
		},
		{
			name:           "invalid UID",
			urlID:          "not-a-uuid",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "user id must be a uuid",
		},
		{
			name:  "user already blocked",
			urlID: targetUID,
			body:  `{}`,
			setupMock: func(m *MockService) {
				m.On("BlockUser", mock.Anything, adminUID, targetUID, "").
					Return(nil, apperr.Validation("user is already blocked"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "user is already blocked",
		},
		{
			name:  "blocking an administrator",
			urlID: targetUID,
			body:  `{}`,
			setupMock: func(m *MockService) {
				m.On("BlockUser", mock.Anything, adminUID, targetUID, "").
					Return(nil, apperr.Forbidden("administrators cannot be blocked"))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "administrators cannot be blocked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPatch, "/api/admin/users/"+tt.urlID+"/block",
				strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
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
