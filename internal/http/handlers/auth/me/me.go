// Package me реализует HTTP-обработчик получения профиля текущего пользователя.
// Пользователь берется из контекста запроса, заполненного auth middleware.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gourav1008/NotesApp/internal/http/middlewarectx"
	"github.com/gourav1008/NotesApp/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Данные пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

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

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
