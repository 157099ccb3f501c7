// Package list реализует HTTP-обработчик получения заметок текущего пользователя.
// Заметки возвращаются страницами, новые первыми.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/middlewarectx"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/pagination"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

// DefaultPageSize размер страницы заметок по умолчанию.
const DefaultPageSize = 50

// Handler обрабатывает запросы на получение списка заметок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка заметок.
type Service interface {
	List(ctx context.Context, userUID string, limit, offset int) ([]*models.Note, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список заметок текущего пользователя
// @Tags Notes
// @Produce  json
// @Param page query int false "Номер страницы (с 1)"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]any "Список заметок"
// @Failure 400 {object} response.ErrorResponse "Некорректная пагинация"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.UserFromContext(r.Context())
	if user == nil {
		log.Error("no authenticated user in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	page, limit, err := pagination.Parse(r, DefaultPageSize)
	if err != nil {
		log.Error("invalid pagination", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "invalid pagination"))
		return
	}

	notes, err := h.service.List(r.Context(), user.UID, limit, (page-1)*limit)
	if err != nil {
		log.Error("failed to list notes", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to list notes"))
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"notes": notes,
		"page":  page,
	}))
}
