// Package services содержит бизнес-логику для управления заметками и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/models"
	"github.com/gourav1008/NotesApp/internal/storage/repository"
)

// NoteRepository определяет методы для работы с заметками в хранилище.
type NoteRepository interface {
	// CreateNote добавляет новую заметку и возвращает её с заполненным ID.
	CreateNote(ctx context.Context, note models.Note) (*models.Note, error)
	// ListNotesByUser возвращает заметки пользователя с пагинацией.
	ListNotesByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Note, error)
	// GetNoteForUser возвращает заметку пользователя по ID.
	GetNoteForUser(ctx context.Context, id int64, userUID string) (*models.Note, error)
	// UpdateNoteForUser обновляет заметку пользователя по ID.
	UpdateNoteForUser(ctx context.Context, id int64, userUID string, note models.Note) (*models.Note, error)
	// DeleteNoteForUser удаляет заметку пользователя, возвращает количество удалённых записей.
	DeleteNoteForUser(ctx context.Context, id int64, userUID string) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// NoteService реализует бизнес-логику работы с заметками, включая кеширование.
// Владелец проверяется на каждой операции: чужая заметка неотличима
// от несуществующей.
type NoteService struct {
	repo  NoteRepository
	cache Cache
	log   *slog.Logger
}

// NewNoteService создает новый экземпляр NoteService.
func NewNoteService(repo NoteRepository, cache Cache, log *slog.Logger) *NoteService {
	return &NoteService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(userUID string, id int64) string {
	return fmt.Sprintf("note:%s:%d", userUID, id)
}

// Create создает новую заметку пользователя, кеширует её и возвращает.
func (s *NoteService) Create(ctx context.Context, userUID string, req models.DummyNote) (*models.Note, error) {
	note, err := s.repo.CreateNote(ctx, models.Note{
		UserUID: userUID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created new note", slog.Int64("id", note.ID))

	key := cacheKey(userUID, note.ID)
	if err := s.cache.Set(key, note, time.Hour); err != nil {
		s.log.Warn("failed to cache note", slog.String("key", key), slog.Any("err", err))
	}

	return note, nil
}

// List возвращает заметки пользователя, новые первыми.
func (s *NoteService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Note, error) {
	return s.repo.ListNotesByUser(ctx, userUID, limit, offset)
}

// Read возвращает заметку пользователя по ID, используя кеш или репозиторий.
func (s *NoteService) Read(ctx context.Context, userUID string, id int64) (*models.Note, error) {
	var result *models.Note
	key := cacheKey(userUID, id)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("failed to read note from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetNoteForUser(ctx, id, userUID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("note not found")
		}
		return nil, err
	}

	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to add note to cache", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет заметку пользователя и обновляет кеш.
func (s *NoteService) Update(ctx context.Context, userUID string, id int64, req models.DummyNote) (*models.Note, error) {
	note, err := s.repo.UpdateNoteForUser(ctx, id, userUID, models.Note{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("note not found")
		}
		return nil, err
	}

	key := cacheKey(userUID, id)
	if err := s.cache.Set(key, note, time.Hour); err != nil {
		s.log.Warn("failed to cache note", slog.String("key", key), slog.Any("err", err))
	}
	return note, nil
}

// Remove удаляет заметку пользователя и инвалидирует кеш.
func (s *NoteService) Remove(ctx context.Context, userUID string, id int64) error {
	key := cacheKey(userUID, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove note from cache", slog.String("key", key), slog.Any("err", err))
	}

	count, err := s.repo.DeleteNoteForUser(ctx, id, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("note not found")
	}
	return nil
}
