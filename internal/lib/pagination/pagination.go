// Package pagination разбирает параметры постраничного вывода из строки запроса.
package pagination

import (
	"net/http"
	"strconv"

	"github.com/gourav1008/NotesApp/internal/apperr"
)

// Parse разбирает параметры page и limit из строки запроса.
// Отсутствующий или нечисловой параметр получает значение по умолчанию,
// явный ноль или отрицательное значение — ошибка.
func Parse(r *http.Request, defaultLimit int) (page, limit int, err error) {
	page, err = positiveQueryInt(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveQueryInt(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func positiveQueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, nil
	}
	if v <= 0 {
		return 0, apperr.Validation(name + " must be a positive integer")
	}
	return v, nil
}
