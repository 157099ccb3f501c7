package middlewarectx

import (
	"context"

	"github.com/gourav1008/NotesApp/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CurrentUser — ключ аутентифицированного пользователя в контексте.
const CurrentUser Key = "current_user"

// UserFromContext извлекает аутентифицированного пользователя из контекста.
// Возвращает nil, если запрос не прошел через Auth middleware.
func UserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(CurrentUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}
