// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/gourav1008/NotesApp/internal/apperr"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле IsBlocked — признак блокировки учетной записи (только при отказе заблокированному).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// Blocked возвращает Response об отказе заблокированной учетной записи.
// Клиент различает его по полю isBlocked, чтобы показать отдельный экран.
func Blocked(msg string) Response {
	return Response{
		Status:    StatusError,
		Error:     msg,
		IsBlocked: true,
	}
}

// FromError строит Response из доменной ошибки. Для ошибок вне доменной
// таксономии возвращается fallback, чтобы внутренние детали не утекали клиенту.
func FromError(err error, fallback string) Response {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return Error(fallback)
	}
	if appErr.IsBlocked {
		return Blocked(appErr.Message)
	}
	return Error(appErr.Message)
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has an unsupported value", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
