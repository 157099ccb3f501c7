package login

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

// Request — входные данные для входа
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (*auth.AuthResult, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Войти в систему
// @Description Проверяет учетные данные и возвращает JWT токен вместе с данными пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} map[string]any "Токен и данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, apperr.StatusOf(err))
		render.JSON(w, r, response.FromError(err, "failed to login"))
		return
	}

	log.Info("user logged in", slog.String("user_uid", res.User.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": res.Token,
		"user":  res.User,
	}))
}
