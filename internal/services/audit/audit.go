// Package services реализует журнал административных действий.
//
// Запись ведётся по принципу fire-and-forget: Record кладёт запись в
// буферизованную очередь и возвращает управление немедленно, фоновый
// воркер сохраняет записи в хранилище. Сбой записи или переполнение
// очереди фиксируются только в операционном логе и метриках — отказ
// журнала никогда не блокирует и не откатывает само административное
// действие. Это осознанный выбор доступности в ущерб полноте журнала.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/metrics"
	"github.com/gourav1008/NotesApp/internal/models"
)

// AuditRepository определяет методы хранилища журнала.
type AuditRepository interface {
	// SaveAdminLog добавляет одну запись журнала.
	SaveAdminLog(ctx context.Context, entry models.AdminLogEntry) error
	// ListAdminLogs возвращает страницу записей по фильтру, новые первыми.
	ListAdminLogs(ctx context.Context, filter models.LogFilter, limit, offset int) ([]*models.AdminLogEntry, error)
	// CountAdminLogs возвращает число записей по фильтру.
	CountAdminLogs(ctx context.Context, filter models.LogFilter) (int, error)
}

// AuditService принимает записи журнала и обслуживает запросы к нему.
type AuditService struct {
	repo    AuditRepository
	log     *slog.Logger
	entries chan models.AdminLogEntry
	wg      sync.WaitGroup
	once    sync.Once
}

// NewAuditService создает AuditService с очередью ёмкостью buffer
// и запускает фоновый воркер записи.
func NewAuditService(repo AuditRepository, log *slog.Logger, buffer int) *AuditService {
	s := &AuditService{
		repo:    repo,
		log:     log,
		entries: make(chan models.AdminLogEntry, buffer),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *AuditService) run() {
	defer s.wg.Done()
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.repo.SaveAdminLog(ctx, entry)
		cancel()
		if err != nil {
			metrics.AuditWriteErrorsTotal.Inc()
			s.log.Error("failed to persist admin log entry", sl.Err(err),
				slog.String("action_type", entry.ActionType),
				slog.String("target_user_id", entry.TargetUID))
			continue
		}
		s.log.Info("admin action logged",
			slog.String("action_type", entry.ActionType),
			slog.String("admin_id", entry.AdminUID),
			slog.String("target_user_id", entry.TargetUID))
	}
}

// Record ставит запись журнала в очередь. Никогда не блокируется и не
// возвращает ошибку: при переполненной очереди запись теряется, потеря
// фиксируется в логе и метрике.
func (s *AuditService) Record(adminUID, actionType, targetUID, details string) {
	entry := models.AdminLogEntry{
		AdminUID:   adminUID,
		ActionType: actionType,
		TargetUID:  targetUID,
		Details:    details,
	}
	select {
	case s.entries <- entry:
	default:
		metrics.AuditDroppedTotal.Inc()
		s.log.Error("audit queue full, dropping entry",
			slog.String("action_type", actionType),
			slog.String("target_user_id", targetUID))
	}
}

// Close останавливает приём новых записей и дожидается, пока воркер
// сохранит всё, что уже в очереди.
func (s *AuditService) Close() {
	s.once.Do(func() {
		close(s.entries)
	})
	s.wg.Wait()
}

// Query возвращает страницу журнала по фильтру. Записи упорядочены строго
// по убыванию времени, при равенстве — по убыванию порядка вставки.
// Запрос страницы за последней возвращает пустой список, а не ошибку.
func (s *AuditService) Query(ctx context.Context, filter models.LogFilter, page, pageSize int) (*models.LogPage, error) {
	if page <= 0 || pageSize <= 0 {
		return nil, apperr.Validation("page and page size must be positive")
	}
	if filter.ActionType != "" && !models.ValidActionType(filter.ActionType) {
		return nil, apperr.Validation(fmt.Sprintf("unknown action type: %s", filter.ActionType))
	}

	entries, err := s.repo.ListAdminLogs(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountAdminLogs(ctx, filter)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*models.AdminLogEntry{}
	}
	return &models.LogPage{
		Entries:    entries,
		Total:      total,
		Page:       page,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}
