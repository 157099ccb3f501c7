// Package middlewarectx содержит HTTP middleware аутентификации,
// авторизации и ограничения частоты запросов.
//
// Auth проверяет наличие и валидность JWT токена в заголовке Authorization
// и помещает аутентифицированного пользователя в контекст запроса.
// Заблокированный пользователь получает 403 с флагом isBlocked на любой
// аутентифицированный запрос: так клиент принудительно завершает сессию.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gourav1008/NotesApp/internal/apperr"
	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/models"
)

// Authenticator описывает интерфейс сервиса проверки токена.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Auth возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден и пользователь не заблокирован, пользователь помещается
// в контекст запроса, иначе возвращается 401 или 403 с описанием причины.
func Auth(authService Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Auth"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.Authenticate(r.Context(), tokenStr)
			if err != nil {
				if apperr.IsBlocked(err) {
					log.Warn("blocked user attempted access")
					render.Status(r, http.StatusForbidden)
					render.JSON(w, r, response.FromError(err, "access denied"))
					return
				}
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, apperr.StatusOf(err))
				render.JSON(w, r, response.FromError(err, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только пользователей с ролью администратора.
// Должен стоять после Auth.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			user := UserFromContext(r.Context())
			if user == nil || !user.IsAdmin() {
				log.Warn("admin access denied",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireNotBlocked повторно проверяет флаг блокировки пользователя из
// контекста. Auth уже отклоняет заблокированных при проверке токена,
// но обработчики, выполняющие мутации, включают эту проверку отдельно.
func RequireNotBlocked(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireNotBlocked"

			user := UserFromContext(r.Context())
			if user != nil && user.IsBlocked {
				log.Warn("blocked user attempted access",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Blocked("account has been blocked, please contact support"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
