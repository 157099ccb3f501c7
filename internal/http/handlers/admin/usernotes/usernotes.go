// Package usernotes реализует HTTP-обработчик просмотра заметок
// произвольного пользователя администратором.
package usernotes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/pagination"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

// DefaultPageSize размер страницы заметок по умолчанию.
const DefaultPageSize = 50

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики просмотра заметок пользователя.
type Service interface {
	UserNotes(ctx context.Context, targetUID string, limit, offset int) ([]*models.Note, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Заметки пользователя по UID
// @Tags Admin
// @Produce  json
// @Param id path string true "UID пользователя"
// @Param page query int false "Номер страницы (с 1)"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]any "Список заметок"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID или пагинация"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /admin/user-notes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.usernotes"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode user uid from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("user id must be a uuid"))
		return
	}

	page, limit, err := pagination.Parse(r, DefaultPageSize)
	if err != nil {
		log.Error("invalid pagination", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.FromError(err, "invalid pagination"))
		return
	}

	notes, err := h.service.UserNotes(r.Context(), uid.String(), limit, (page-1)*limit)
	if err != nil {
		log.Error("failed to list user notes", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to list user notes"))
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
