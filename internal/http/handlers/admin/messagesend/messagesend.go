// Package messagesend реализует HTTP-обработчик отправки сообщения
// от администратора пользователю.
package messagesend

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

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

// Service описывает интерфейс бизнес-логики отправки сообщений.
type Service interface {
	SendMessage(ctx context.Context, adminUID string, req models.DummyMessage) (*models.Message, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить сообщение пользователю
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyMessage true "Получатель и текст сообщения"
// @Success 200 {object} map[string]any "Отправленное сообщение"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Получатель не найден"
// @Security BearerAuth
// @Router /admin/messages [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.messagesend"

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

	var req models.DummyMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	msg, err := h.service.SendMessage(r.Context(), admin.UID, req)
	if err != nil {
		log.Error("failed to send message", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to send message"))
		return
	}

	log.Info("message sent", slog.Int64("message_id", msg.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": msg,
	}))
}
