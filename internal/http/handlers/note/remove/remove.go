// Package remove реализует HTTP-обработчик удаления заметки по ID.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/middlewarectx"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление заметки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления заметки.
type Service interface {
	Remove(ctx context.Context, userUID string, id int64) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить заметку по ID
// @Tags Notes
// @Produce  json
// @Param id path int true "ID заметки"
// @Success 200 {object} map[string]any "Подтверждение удаления"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.remove"

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

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("note id must be an integer"))
		return
	}

	if err = h.service.Remove(r.Context(), user.UID, id); err != nil {
		log.Error("failed to delete note", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to delete note"))
		return
	}

	log.Info("note deleted", slog.Int64("note_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "note deleted successfully",
	}))
}
