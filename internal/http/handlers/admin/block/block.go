// Package block реализует HTTP-обработчик блокировки пользователя.
//
// Блокировка немедленно лишает пользователя доступа: каждый следующий
// аутентифицированный запрос получает 403 с флагом isBlocked.
package block

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

// Request — входные данные блокировки. Причина опциональна.
type Request struct {
	Reason string `json:"reason"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики блокировки пользователя.
type Service interface {
	BlockUser(ctx context.Context, adminUID, targetUID, reason string) (*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Заблокировать пользователя
// @Description Блокирует пользователя. Администратора заблокировать нельзя, повторная блокировка — ошибка.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "UID пользователя"
// @Param request body Request false "Причина блокировки"
// @Success 200 {object} map[string]any "Обновленные данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Пользователь уже заблокирован"
// @Failure 403 {object} response.ErrorResponse "Попытка заблокировать администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /admin/users/{id}/block [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.block"

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

	// тело опционально
	var req Request
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	user, err := h.service.BlockUser(r.Context(), admin.UID, uid.String(), req.Reason)
	if err != nil {
		log.Error("failed to block user", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to block user"))
		return
	}

	log.Info("user blocked",
		slog.String("target_uid", user.UID),
		slog.String("admin_uid", admin.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
