// Package inbox реализует HTTP-обработчик просмотра сообщений,
// адресованных текущему пользователю.
package inbox

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

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

// Service описывает интерфейс бизнес-логики просмотра сообщений.
type Service interface {
	ListMessages(ctx context.Context, recipientUID string) ([]*models.Message, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сообщения текущего пользователя
// @Tags Messages
// @Produce  json
// @Success 200 {object} map[string]any "Список сообщений, новые первыми"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /admin/messages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.message.inbox"

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

	messages, err := h.service.ListMessages(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to list messages", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to list messages"))
		return
	}
	if messages == nil {
		messages = []*models.Message{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"messages": messages,
	}))
}
