// Package adminnoteupdate реализует HTTP-обработчик обновления
// административной заметки.
package adminnoteupdate

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
	"github.com/gourav1008/NotesApp/internal/http/middlewarectx"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления административной заметки.
type Service interface {
	UpdateAdminNote(ctx context.Context, adminUID string, noteID int64, req models.DummyAdminNote) (*models.AdminNote, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить административную заметку
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID административной заметки"
// @Param request body models.DummyAdminNote true "Новые данные заметки"
// @Success 200 {object} map[string]any "Обновленная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Security BearerAuth
// @Router /admin/admin-notes/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.adminnoteupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	admin := middlewarectx.UserFromContext(r.Context())
	if admin == nil {
		log.Error("no authenticated user in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("admin note id must be an integer"))
		return
	}

	var req models.DummyAdminNote
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

	note, err := h.service.UpdateAdminNote(r.Context(), admin.UID, id, req)
	if err != nil {
		log.Error("failed to update admin note", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to update admin note"))
		return
	}

	log.Info("admin note updated", slog.Int64("note_id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"note": note,
	}))
}
