package read

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

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userUID string, id int64) (*models.Note, error) {
	args := m.Called(ctx, userUID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

const ownerUID = "33333333-3333-3333-3333-333333333333"

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlID          string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "successful note read",
			urlID:    "123",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, ownerUID, int64(123)).
					Return(&models.Note{ID: 123, UserUID: ownerUID, Title: "shopping"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"shopping"`,
		},
		{
			name:           "invalid id in URL",
			urlID:          "abc",
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "note id must be an integer",
		},
		{
			name:     "foreign note looks like missing note",
			urlID:    "777",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, ownerUID, int64(777)).
					Return(nil, apperr.NotFound("note not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "note not found",
		},
		{
			name:           "no user in context",
			urlID:          "123",
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/notes/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.CurrentUser,
					&models.User{UID: ownerUID, Role: models.RoleUser})
			}
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
