// Package userlist реализует HTTP-обработчик списка всех пользователей
// для административной консоли.
package userlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список всех пользователей
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 403 {object} response.ErrorResponse "Доступ только администраторам"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to list users"))
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": users,
	}))
}
