// Package services содержит бизнес-логику административных операций:
// управление пользователями, заметки администраторов, сообщения и
// привилегированные операции над заметками пользователей.
//
// Каждая привилегированная мутация следует одному шаблону: загрузить и
// проверить целевую сущность, применить доменный инвариант, выполнить
// изменение, сохранить, записать действие в журнал, вернуть результат.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/models"
	"github.com/gourav1008/NotesApp/internal/storage/repository"
)

// DeleteConfirmation значение, которое обязан прислать администратор,
// чтобы подтвердить каскадное удаление пользователя.
const DeleteConfirmation = "DELETE"

// AdminRepository определяет методы хранилища, используемые административными операциями.
type AdminRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UserStats(ctx context.Context) (map[string]models.UserStats, error)
	BlockUser(ctx context.Context, userUID, adminUID string) (int64, error)
	UnblockUser(ctx context.Context, userUID string) (int64, error)
	DeleteUserCascade(ctx context.Context, userUID string) error

	GetNote(ctx context.Context, id int64) (*models.Note, error)
	ListNotesByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Note, error)
	ListAllNotes(ctx context.Context, limit, offset int) ([]*models.Note, error)
	UpdateNote(ctx context.Context, id int64, note models.Note) (*models.Note, error)
	DeleteNote(ctx context.Context, id int64) (int64, error)

	CreateAdminNote(ctx context.Context, note models.AdminNote) (*models.AdminNote, error)
	ListAdminNotesByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.AdminNote, error)
	CountAdminNotesByUser(ctx context.Context, userUID string) (int, error)
	GetAdminNote(ctx context.Context, id int64) (*models.AdminNote, error)
	UpdateAdminNote(ctx context.Context, id int64, content string, richText []byte) (*models.AdminNote, error)
	DeleteAdminNote(ctx context.Context, id int64) (int64, error)

	CreateMessage(ctx context.Context, msg models.Message) (*models.Message, error)
	ListMessagesByRecipient(ctx context.Context, recipientUID string) ([]*models.Message, error)
}

// Recorder описывает журнал административных действий. Запись не блокирует
// вызывающего и не возвращает ошибку.
type Recorder interface {
	Record(adminUID, actionType, targetUID, details string)
}

// Invalidator описывает инвалидацию кеша заметок.
type Invalidator interface {
	Invalidate(key string) error
}

// AdminService реализует административные операции.
type AdminService struct {
	repo  AdminRepository
	audit Recorder
	cache Invalidator
	log   *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo AdminRepository, audit Recorder, cache Invalidator, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:  repo,
		audit: audit,
		cache: cache,
		log:   log,
	}
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// UserStats возвращает статистику заметок по каждому пользователю.
func (s *AdminService) UserStats(ctx context.Context) (map[string]models.UserStats, error) {
	return s.repo.UserStats(ctx)
}

// UserDetails возвращает данные одного пользователя.
func (s *AdminService) UserDetails(ctx context.Context, targetUID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, targetUID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// UserNotes возвращает заметки указанного пользователя, новые первыми.
func (s *AdminService) UserNotes(ctx context.Context, targetUID string, limit, offset int) ([]*models.Note, error) {
	if _, err := s.UserDetails(ctx, targetUID); err != nil {
		return nil, err
	}
	return s.repo.ListNotesByUser(ctx, targetUID, limit, offset)
}

// ListAllNotes возвращает заметки всех пользователей, новые первыми.
func (s *AdminService) ListAllNotes(ctx context.Context, limit, offset int) ([]*models.Note, error) {
	return s.repo.ListAllNotes(ctx, limit, offset)
}

// BlockUser блокирует пользователя. Администратора заблокировать нельзя,
// повторная блокировка — ошибка валидации, а не no-op: условный UPDATE
// гарантирует это и при гонке двух администраторов.
func (s *AdminService) BlockUser(ctx context.Context, adminUID, targetUID, reason string) (*models.User, error) {
	target, err := s.UserDetails(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	if target.IsAdmin() {
		return nil, apperr.Forbidden("administrators cannot be blocked")
	}
	if target.IsBlocked {
		return nil, apperr.Validation("user is already blocked")
	}

	count, err := s.repo.BlockUser(ctx, targetUID, adminUID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// гонка: кто-то успел заблокировать первым
		return nil, apperr.Validation("user is already blocked")
	}

	details := fmt.Sprintf("blocked user %s", target.Email)
	if reason != "" {
		details = fmt.Sprintf("blocked user %s: %s", target.Email, reason)
	}
	s.audit.Record(adminUID, models.ActionBlockUser, targetUID, details)

	return s.UserDetails(ctx, targetUID)
}

// UnblockUser снимает блокировку. Снятие с незаблокированного пользователя —
// ошибка валидации.
func (s *AdminService) UnblockUser(ctx context.Context, adminUID, targetUID string) (*models.User, error) {
	target, err := s.UserDetails(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	if !target.IsBlocked {
		return nil, apperr.Validation("user is not blocked")
	}

	count, err := s.repo.UnblockUser(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.Validation("user is not blocked")
	}

	s.audit.Record(adminUID, models.ActionUnblockUser, targetUID,
		fmt.Sprintf("unblocked user %s", target.Email))

	return s.UserDetails(ctx, targetUID)
}

// DeleteUser каскадно удаляет пользователя и все его данные. Требует
// явного подтверждения строкой DeleteConfirmation. Администратора удалить
// нельзя. Запись в журнал выполняется только после успешного завершения
// всей транзакции удаления.
func (s *AdminService) DeleteUser(ctx context.Context, adminUID, targetUID, confirmation string) error {
	if confirmation != DeleteConfirmation {
		return apperr.Validation(`confirmation value must be exactly "DELETE"`)
	}

	target, err := s.UserDetails(ctx, targetUID)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		return apperr.Forbidden("administrators cannot be deleted")
	}

	if err = s.repo.DeleteUserCascade(ctx, targetUID); err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("user not found")
		}
		return err
	}

	s.audit.Record(adminUID, models.ActionDeleteUser, targetUID,
		fmt.Sprintf("deleted user %s with all notes, messages and admin notes", target.Email))
	return nil
}

// UpdateUserNote обновляет любую заметку пользователя (привилегированная операция).
func (s *AdminService) UpdateUserNote(ctx context.Context, noteID int64, req models.DummyNote) (*models.Note, error) {
	note, err := s.repo.UpdateNote(ctx, noteID, models.Note{Title: req.Title, Content: req.Content})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("note not found")
		}
		return nil, err
	}
	s.invalidateNote(note.UserUID, note.ID)
	return note, nil
}

// DeleteUserNote удаляет любую заметку пользователя (привилегированная операция).
func (s *AdminService) DeleteUserNote(ctx context.Context, noteID int64) error {
	note, err := s.repo.GetNote(ctx, noteID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("note not found")
		}
		return err
	}

	count, err := s.repo.DeleteNote(ctx, noteID)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("note not found")
	}
	s.invalidateNote(note.UserUID, note.ID)
	return nil
}

func (s *AdminService) invalidateNote(userUID string, id int64) {
	key := fmt.Sprintf("note:%s:%d", userUID, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate note cache", slog.String("key", key), slog.Any("err", err))
	}
}

// AddAdminNote создает административную заметку о пользователе.
func (s *AdminService) AddAdminNote(ctx context.Context, adminUID, targetUID string, req models.DummyAdminNote) (*models.AdminNote, error) {
	if _, err := s.UserDetails(ctx, targetUID); err != nil {
		return nil, err
	}

	note, err := s.repo.CreateAdminNote(ctx, models.AdminNote{
		UserUID:  targetUID,
		AdminUID: adminUID,
		Content:  req.Content,
		RichText: req.RichText,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(adminUID, models.ActionAddNote, targetUID,
		fmt.Sprintf("added admin note %d", note.ID))
	return note, nil
}

// ListAdminNotes возвращает страницу административных заметок о пользователе.
func (s *AdminService) ListAdminNotes(ctx context.Context, targetUID string, page, pageSize int) (*models.AdminNotePage, error) {
	if page <= 0 || pageSize <= 0 {
		return nil, apperr.Validation("page and page size must be positive")
	}
	if _, err := s.UserDetails(ctx, targetUID); err != nil {
		return nil, err
	}

	notes, err := s.repo.ListAdminNotesByUser(ctx, targetUID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountAdminNotesByUser(ctx, targetUID)
	if err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []*models.AdminNote{}
	}
	return &models.AdminNotePage{
		Notes:      notes,
		Total:      total,
		Page:       page,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// UpdateAdminNote целиком заменяет содержимое административной заметки.
func (s *AdminService) UpdateAdminNote(ctx context.Context, adminUID string, noteID int64, req models.DummyAdminNote) (*models.AdminNote, error) {
	if _, err := s.repo.GetAdminNote(ctx, noteID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("admin note not found")
		}
		return nil, err
	}

	note, err := s.repo.UpdateAdminNote(ctx, noteID, req.Content, req.RichText)
	if err != nil {
		return nil, err
	}

	s.audit.Record(adminUID, models.ActionUpdateNote, note.UserUID,
		fmt.Sprintf("updated admin note %d", note.ID))
	return note, nil
}

// DeleteAdminNote удаляет административную заметку без возможности восстановления.
func (s *AdminService) DeleteAdminNote(ctx context.Context, adminUID string, noteID int64) error {
	note, err := s.repo.GetAdminNote(ctx, noteID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("admin note not found")
		}
		return err
	}

	count, err := s.repo.DeleteAdminNote(ctx, noteID)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("admin note not found")
	}

	s.audit.Record(adminUID, models.ActionDeleteNote, note.UserUID,
		fmt.Sprintf("deleted admin note %d", noteID))
	return nil
}

// SendMessage отправляет сообщение от администратора пользователю.
func (s *AdminService) SendMessage(ctx context.Context, adminUID string, req models.DummyMessage) (*models.Message, error) {
	if _, err := s.UserDetails(ctx, req.RecipientUID); err != nil {
		return nil, err
	}
	return s.repo.CreateMessage(ctx, models.Message{
		SenderUID:    adminUID,
		RecipientUID: req.RecipientUID,
		Content:      req.Content,
	})
}

// ListMessages возвращает сообщения, адресованные пользователю, новые первыми.
func (s *AdminService) ListMessages(ctx context.Context, recipientUID string) ([]*models.Message, error) {
	return s.repo.ListMessagesByRecipient(ctx, recipientUID)
}
