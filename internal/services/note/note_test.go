package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/models"
	"github.com/gourav1008/NotesApp/internal/storage/repository"
)

// MockNoteRepository реализует интерфейс NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	args := m.Called(ctx, note)
	if res := args.Get(0); res != nil {
		return res.(*models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoteRepository) ListNotesByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Note, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoteRepository) GetNoteForUser(ctx context.Context, id int64, userUID string) (*models.Note, error) {
	args := m.Called(ctx, id, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoteRepository) UpdateNoteForUser(ctx context.Context, id int64, userUID string, note models.Note) (*models.Note, error) {
	args := m.Called(ctx, id, userUID, note)
	if res := args.Get(0); res != nil {
		return res.(*models.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoteRepository) DeleteNoteForUser(ctx context.Context, id int64, userUID string) (int64, error) {
	args := m.Called(ctx, id, userUID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestService(repo *MockNoteRepository, cache *MockCache) *NoteService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewNoteService(repo, cache, logger)
}

const ownerUID = "33333333-3333-3333-3333-333333333333"

func TestCreate(t *testing.T) {
	repo := new(MockNoteRepository)
	cache := new(MockCache)
	created := &models.Note{ID: 1, UserUID: ownerUID, Title: "title", Content: "body"}

	repo.On("CreateNote", mock.Anything, models.Note{UserUID: ownerUID, Title: "title", Content: "body"}).
		Return(created, nil)
	cache.On("Set", "note:"+ownerUID+":1", created, time.Hour).Return(nil)

	service := newTestService(repo, cache)
	note, err := service.Create(context.Background(), ownerUID, models.DummyNote{Title: "title", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.ID)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReadCacheMiss(t *testing.T) {
	repo := new(MockNoteRepository)
	cache := new(MockCache)
	stored := &models.Note{ID: 2, UserUID: ownerUID, Title: "cached later"}

	cache.On("Get", "note:"+ownerUID+":2", mock.Anything).Return(false, nil)
	repo.On("GetNoteForUser", mock.Anything, int64(2), ownerUID).Return(stored, nil)
	cache.On("Set", "note:"+ownerUID+":2", stored, time.Hour).Return(nil)

	service := newTestService(repo, cache)
	note, err := service.Read(context.Background(), ownerUID, 2)
	require.NoError(t, err)
	assert.Equal(t, "cached later", note.Title)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReadForeignNoteNotFound(t *testing.T) {
	// чужая заметка неотличима от несуществующей
	repo := new(MockNoteRepository)
	cache := new(MockCache)

	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("GetNoteForUser", mock.Anything, int64(9), ownerUID).Return(nil, repository.ErrNoRows)

	service := newTestService(repo, cache)
	_, err := service.Read(context.Background(), ownerUID, 9)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.StatusOf(err))
}

func TestReadSurvivesCacheFailure(t *testing.T) {
	// отказ кеша не мешает чтению из хранилища
	repo := new(MockNoteRepository)
	cache := new(MockCache)
	stored := &models.Note{ID: 4, UserUID: ownerUID, Title: "still works"}

	cache.On("Get", mock.Anything, mock.Anything).Return(false, assert.AnError)
	repo.On("GetNoteForUser", mock.Anything, int64(4), ownerUID).Return(stored, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	service := newTestService(repo, cache)
	note, err := service.Read(context.Background(), ownerUID, 4)
	require.NoError(t, err)
	assert.Equal(t, "still works", note.Title)
}

func TestUpdateNotFound(t *testing.T) {
	repo := new(MockNoteRepository)
	cache := new(MockCache)

	repo.On("UpdateNoteForUser", mock.Anything, int64(5), ownerUID, mock.Anything).
		Return(nil, repository.ErrNoRows)

	service := newTestService(repo, cache)
	_, err := service.Update(context.Background(), ownerUID, 5, models.DummyNote{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Equal(t, 404, apperr.StatusOf(err))
}

func TestRemove(t *testing.T) {
	repo := new(MockNoteRepository)
	cache := new(MockCache)

	cache.On("Invalidate", "note:"+ownerUID+":6").Return(nil)
	repo.On("DeleteNoteForUser", mock.Anything, int64(6), ownerUID).Return(int64(1), nil)

	service := newTestService(repo, cache)
	require.NoError(t, service.Remove(context.Background(), ownerUID, 6))

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRemoveNotFound(t *testing.T) {
	repo := new(MockNoteRepository)
	cache := new(MockCache)

	cache.On("Invalidate", mock.Anything).Return(nil)
	repo.On("DeleteNoteForUser", mock.Anything, int64(7), ownerUID).Return(int64(0), nil)

	service := newTestService(repo, cache)
	err := service.Remove(context.Background(), ownerUID, 7)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.StatusOf(err))
}
