// Package apperr определяет таксономию ошибок приложения и сопоставление
// каждой категории с HTTP-статусом. Бизнес-логика возвращает ошибки этого
// пакета, а HTTP-слой переводит их в код ответа и безопасное сообщение,
// не раскрывая внутренних деталей.
package apperr

import (
	"errors"
	"net/http"
)

// Error ошибка приложения с категорией, выраженной HTTP-статусом.
// Message безопасен для показа клиенту.
type Error struct {
	Status    int    // HTTP-статус, соответствующий категории
	Message   string // Сообщение для клиента
	IsBlocked bool   // Признак отказа заблокированному пользователю
	Err       error  // Исходная ошибка (опционально)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation ошибка входных данных, исправимая клиентом (400).
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized ошибка аутентификации (401).
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden ошибка авторизации (403).
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// Blocked отказ заблокированной учётной записи (403). Ответ обязан нести
// машинно-читаемый флаг is_blocked, чтобы клиент выполнил принудительный выход.
func Blocked() *Error {
	return &Error{
		Status:    http.StatusForbidden,
		Message:   "account has been blocked, please contact support",
		IsBlocked: true,
	}
}

// NotFound отсутствие запрошенной сущности (404).
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// RateLimited отказ из-за превышения лимита запросов (429).
func RateLimited(msg string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: msg}
}

// Configuration ошибка конфигурации сервера (500). Не маскируется под
// обычную внутреннюю ошибку, чтобы оператор отличал "повторить позже"
// от "исправить деплой".
func Configuration(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

// StatusOf возвращает HTTP-статус ошибки. Для неизвестных ошибок — 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// IsBlocked сообщает, является ли ошибка отказом заблокированному пользователю.
func IsBlocked(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.IsBlocked
}
