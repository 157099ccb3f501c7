// Package logs реализует HTTP-обработчик постраничного просмотра журнала
// административных действий с фильтрацией.
//
// Фильтры комбинируются независимо: администратор, тип действия, целевой
// пользователь и границы времени (включительно). Неизвестный тип действия —
// ошибка валидации, а не пустой результат.
package logs

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/pagination"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

// DefaultPageSize размер страницы журнала по умолчанию.
const DefaultPageSize = 50

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения журнала.
type Service interface {
	Query(ctx context.Context, filter models.LogFilter, page, pageSize int) (*models.LogPage, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Журнал административных действий
// @Tags Admin
// @Produce  json
// @Param page query int false "Номер страницы (с 1)"
// @Param limit query int false "Размер страницы"
// @Param adminId query string false "UID администратора"
// @Param actionType query string false "Тип действия"
// @Param targetUserId query string false "UID целевого пользователя"
// @Param dateFrom query string false "Нижняя граница времени (RFC3339 или YYYY-MM-DD)"
// @Param dateTo query string false "Верхняя граница времени (RFC3339 или YYYY-MM-DD)"
// @Success 200 {object} map[string]any "Страница журнала"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр или пагинация"
// @Security BearerAuth
// @Router /admin/logs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.logs"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, limit, err := pagination.Parse(r, DefaultPageSize)
	if err != nil {
		log.Error("invalid pagination", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.FromError(err, "invalid pagination"))
		return
	}

	query := r.URL.Query()
	filter := models.LogFilter{
		AdminUID:   query.Get("adminId"),
		ActionType: query.Get("actionType"),
		TargetUID:  query.Get("targetUserId"),
	}

	filter.DateFrom, err = parseBound(query.Get("dateFrom"), false)
	if err != nil {
		log.Error("invalid dateFrom", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("dateFrom must be RFC3339 or YYYY-MM-DD"))
		return
	}
	filter.DateTo, err = parseBound(query.Get("dateTo"), true)
	if err != nil {
		log.Error("invalid dateTo", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("dateTo must be RFC3339 or YYYY-MM-DD"))
		return
	}

	logsPage, err := h.service.Query(r.Context(), filter, page, limit)
	if err != nil {
		log.Error("failed to query admin logs", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to query admin logs"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(logsPage))
}

// parseBound разбирает границу времени. Дата без времени трактуется как
// начало дня, для верхней границы — как конец дня, чтобы обе границы
// были включительными.
func parseBound(raw string, upper bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
