// Package adminnotelist реализует HTTP-обработчик постраничного просмотра
// административных заметок о пользователе.
package adminnotelist

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

// DefaultPageSize размер страницы административных заметок по умолчанию.
const DefaultPageSize = 10

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка административных заметок.
type Service interface {
	ListAdminNotes(ctx context.Context, targetUID string, page, pageSize int) (*models.AdminNotePage, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Административные заметки о пользователе
// @Tags Admin
// @Produce  json
// @Param id path string true "UID пользователя"
// @Param page query int false "Номер страницы (с 1)"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]any "Страница заметок"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID или пагинация"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /admin/users/{id}/notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.adminnotelist"

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

	notes, err := h.service.ListAdminNotes(r.Context(), uid.String(), page, limit)
	if err != nil {
		log.Error("failed to list admin notes", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to list admin notes"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(notes))
}
