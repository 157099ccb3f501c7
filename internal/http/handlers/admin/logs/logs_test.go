package logs

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/models"
)

// MockService реализует интерфейс logs.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Query(ctx context.Context, filter models.LogFilter, page, pageSize int) (*models.LogPage, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if res := args.Get(0); res != nil {
		return res.(*models.LogPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLogsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	emptyPage := &models.LogPage{Entries: []*models.AdminLogEntry{}, Page: 1}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "default values",
			url:  "/api/admin/logs",
			setupMock: func(m *MockService) {
				m.On("Query", mock.Anything, models.LogFilter{}, 1, 50).Return(emptyPage, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"logs":[]`,
		},
		{
			name: "explicit pagination and filters",
			url:  "/api/admin/logs?page=2&limit=10&adminId=admin-1&actionType=BLOCK_USER&targetUserId=user-1",
			setupMock: func(m *MockService) {
				m.On("Query", mock.Anything, models.LogFilter{
					AdminUID:   "admin-1",
					ActionType: models.ActionBlockUser,
					TargetUID:  "user-1",
				}, 2, 10).Return(&models.LogPage{
					Entries:    []*models.AdminLogEntry{{ID: 42, ActionType: models.ActionBlockUser}},
					Total:      11,
					Page:       2,
					TotalPages: 2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":11`,
		},
		{
			name:           "zero page",
			url:            "/api/admin/logs?page=0",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "page must be a positive integer",
		},
		{
			name: "unknown action type",
			url:  "/api/admin/logs?actionType=REBOOT_SERVER",
			setupMock: func(m *MockService) {
				m.On("Query", mock.Anything, models.LogFilter{ActionType: "REBOOT_SERVER"}, 1, 50).
					Return(nil, apperr.Validation("unknown action type: REBOOT_SERVER"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "unknown action type",
		},
		{
			name:           "invalid date",
			url:            "/api/admin/logs?dateFrom=yesterday",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "dateFrom must be RFC3339 or YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestLogsHandlerDateBounds(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mockService := new(MockService)

	var captured models.LogFilter
	mockService.On("Query", mock.Anything, mock.MatchedBy(func(f models.LogFilter) bool {
		captured = f
		return true
	}), 1, 50).Return(&models.LogPage{Entries: []*models.AdminLogEntry{}}, nil)

	handler := New(logger, mockService)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/logs?dateFrom=2026-03-01&dateTo=2026-03-02", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured.DateFrom)
	require.NotNil(t, captured.DateTo)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), captured.DateFrom.UTC())
	// дата без времени в верхней границе означает конец дня
	assert.True(t, captured.DateTo.After(time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)))
}
