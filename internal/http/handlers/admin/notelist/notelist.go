// Package notelist реализует HTTP-обработчик просмотра заметок всех
// пользователей администратором.
package notelist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

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

// Service описывает интерфейс бизнес-логики списка всех заметок.
type Service interface {
	ListAllNotes(ctx context.Context, limit, offset int) ([]*models.Note, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Заметки всех пользователей
// @Tags Admin
// @Produce  json
// @Param page query int false "Номер страницы (с 1)"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]any "Список заметок"
// @Failure 400 {object} response.ErrorResponse "Некорректная пагинация"
// @Security BearerAuth
// @Router /admin/notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.notelist"

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

	notes, err := h.service.ListAllNotes(r.Context(), limit, (page-1)*limit)
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
