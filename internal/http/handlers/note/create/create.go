// Package create реализует HTTP-обработчик создания заметки текущего пользователя.
//
// Handler принимает JSON-запрос с данными заметки, валидирует их, извлекает
// владельца из контекста и возвращает созданную заметку в JSON-формате.
package create

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

// Handler управляет HTTP-запросами на создание заметок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики заметок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания заметки.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyNote) (*models.Note, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую заметку
// @Description Создает заметку текущего пользователя. Возвращает созданную запись.
// @Tags Notes
// @Accept  json
// @Produce  json
// @Param request body models.DummyNote true "Данные новой заметки"
// @Success 200 {object} map[string]any "Созданная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /notes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.create"

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

	var req models.DummyNote
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

	note, err := h.service.Create(r.Context(), user.UID, req)
	if err != nil {
		log.Error("failed to create note", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to create note"))
		return
	}

	log.Info("note created", slog.Int64("note_id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"note": note,
	}))
}
