// Package unblock реализует HTTP-обработчик снятия блокировки пользователя.
package unblock

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/middlewarectx"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики снятия блокировки.
type Service interface {
	UnblockUser(ctx context.Context, adminUID, targetUID string) (*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Снять блокировку пользователя
// @Tags Admin
// @Produce  json
// @Param id path string true "UID пользователя"
// @Success 200 {object} map[string]any "Обновленные данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Пользователь не заблокирован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /admin/users/{id}/unblock [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.unblock"

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

	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode user uid from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("user id must be a uuid"))
		return
	}

	user, err := h.service.UnblockUser(r.Context(), admin.UID, uid.String())
	if err != nil {
		log.Error("failed to unblock user", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to unblock user"))
		return
	}

	log.Info("user unblocked",
		slog.String("target_uid", user.UID),
		slog.String("admin_uid", admin.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
