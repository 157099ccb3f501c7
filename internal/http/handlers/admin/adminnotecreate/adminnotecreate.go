// Package adminnotecreate реализует HTTP-обработчик создания
// административной заметки о пользователе.
package adminnotecreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

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

// Service описывает интерфейс бизнес-логики создания административной заметки.
type Service interface {
	AddAdminNote(ctx context.Context, adminUID, targetUID string, req models.DummyAdminNote) (*models.AdminNote, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать административную заметку о пользователе
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "UID пользователя"
// @Param request body models.DummyAdminNote true "Данные заметки"
// @Success 200 {object} map[string]any "Созданная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /admin/users/{id}/notes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.adminnotecreate"

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

	var req models.DummyAdminNote
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	note, err := h.service.AddAdminNote(r.Context(), admin.UID, uid.String(), req)
	if err != nil {
		log.Error("failed to create admin note", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to create admin note"))
		return
	}

	log.Info("admin note created", slog.Int64("note_id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"note": note,
	}))
}
