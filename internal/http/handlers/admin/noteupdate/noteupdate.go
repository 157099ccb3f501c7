// Package noteupdate реализует HTTP-обработчик привилегированного
// обновления любой пользовательской заметки администратором.
package noteupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс привилегированного обновления заметки.
type Service interface {
	UpdateUserNote(ctx context.Context, noteID int64, req models.DummyNote) (*models.Note, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить любую заметку пользователя
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID заметки"
// @Param request body models.DummyNote true "Новые данные заметки"
// @Success 200 {object} map[string]any "Обновленная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Security BearerAuth
// @Router /admin/notes/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.noteupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("note id must be an integer"))
		return
	}

	var req models.DummyNote
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	note, err := h.service.UpdateUserNote(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update note", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to update note"))
		return
	}

	log.Info("note updated by admin", slog.Int64("note_id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"note": note,
	}))
}
