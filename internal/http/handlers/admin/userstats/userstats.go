// Package userstats реализует HTTP-обработчик агрегированной статистики
// заметок по каждому пользователю.
package userstats

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

// Service описывает интерфейс бизнес-логики статистики пользователей.
type Service interface {
	UserStats(ctx context.Context) (map[string]models.UserStats, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика заметок по пользователям
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Статистика по UID пользователя"
// @Failure 403 {object} response.ErrorResponse "Доступ только администраторам"
// @Security BearerAuth
// @Router /admin/user-stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userstats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.UserStats(r.Context())
	if err != nil {
		log.Error("failed to collect user stats", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to collect user stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": stats,
	}))
}
