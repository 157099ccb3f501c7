// Package read реализует HTTP-обработчик получения конкретной заметки по ID.
//
// Заметка видна только своему владельцу: чужая заметка неотличима
// от несуществующей и возвращает 404.
package read

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
	"github.com/gourav1008/NotesApp/internal/models"
)

// Handler обрабатывает запросы на получение заметки по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения заметки.
type Service interface {
	Read(ctx context.Context, userUID string, id int64) (*models.Note, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить заметку по ID
// @Tags Notes
// @Produce  json
// @Param id path int true "ID заметки"
// @Success 200 {object} map[string]any "Заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Security BearerAuth
// @Router /notes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.read"

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

	note, err := h.service.Read(r.Context(), user.UID, id)
	if err != nil {
		log.Error("failed to read note", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to read note"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"note": note,
	}))
}
