// Package userdelete реализует HTTP-обработчик каскадного удаления пользователя.
//
// Удаление необратимо и требует явного подтверждения строкой "DELETE"
// в теле запроса. Вместе с пользователем удаляются его заметки, сообщения
// и административные заметки; записи журнала действий сохраняются.
package userdelete

import (
	"context"
	"encoding/json"
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
)

// Request — входные данные удаления с обязательным подтверждением.
type Request struct {
	Confirmation string `json:"confirmation"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления пользователя.
type Service interface {
	DeleteUser(ctx context.Context, adminUID, targetUID, confirmation string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить пользователя со всеми данными
// @Description Каскадно удаляет пользователя, его заметки, сообщения и административные заметки. Требует подтверждения строкой "DELETE".
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "UID пользователя"
// @Param request body Request true "Подтверждение удаления"
// @Success 200 {object} map[string]any "Подтверждение удаления"
// @Failure 400 {object} response.ErrorResponse "Отсутствует или неверное подтверждение"
// @Failure 403 {object} response.ErrorResponse "Попытка удалить администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userdelete"

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

	var req Request
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err = h.service.DeleteUser(r.Context(), admin.UID, uid.String(), req.Confirmation); err != nil {
		log.Error("failed to delete user", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to delete user"))
		return
	}

	log.Info("user deleted",
		slog.String("target_uid", uid.String()),
		slog.String("admin_uid", admin.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "user and all associated data deleted",
	}))
}
