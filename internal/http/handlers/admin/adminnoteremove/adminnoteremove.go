// Package adminnoteremove реализует HTTP-обработчик удаления
// административной заметки.
package adminnoteremove

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

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления административной заметки.
type Service interface {
	DeleteAdminNote(ctx context.Context, adminUID string, noteID int64) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить административную заметку
// @Tags Admin
// @Produce  json
// @Param id path int true "ID административной заметки"
// @Success 200 {object} map[string]any "Подтверждение удаления"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Security BearerAuth
// @Router /admin/admin-notes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.adminnoteremove"

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

	if err = h.service.DeleteAdminNote(r.Context(), admin.UID, id); err != nil {
		log.Error("failed to delete admin note", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to delete admin note"))
		return
	}

	log.Info("admin note deleted", slog.Int64("note_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "admin note deleted successfully",
	}))
}
