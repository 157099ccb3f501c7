// Package userdetails реализует HTTP-обработчик получения данных
// одного пользователя по UID.
package userdetails

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
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики данных пользователя.
type Service interface {
	UserDetails(ctx context.Context, targetUID string) (*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Данные пользователя по UID
// @Tags Admin
// @Produce  json
// @Param id path string true "UID пользователя"
// @Success 200 {object} map[string]any "Данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /admin/user-details/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userdetails"

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

	user, err := h.service.UserDetails(r.Context(), uid.String())
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to read user"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
