package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/services/auth"
)

// Request — входные данные для регистрации
type Request struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, rawPassword string) (*auth.AuthResult, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать нового пользователя
// @Description Создает учетную запись и возвращает JWT токен вместе с данными пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Success 201 {object} map[string]any "Токен и данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дубликат email/имени"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	res, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to register user"))
		return
	}

	log.Info("user registered", slog.String("user_uid", res.User.UID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": res.Token,
		"user":  res.User,
	}))
}
