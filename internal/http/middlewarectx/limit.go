package middlewarectx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"github.com/gourav1008/NotesApp/internal/http/response"
	"github.com/gourav1008/NotesApp/internal/metrics"
	"github.com/gourav1008/NotesApp/internal/ratelimit"
)

// Admitter описывает интерфейс ограничителя частоты запросов.
type Admitter interface {
	Admit(ctx context.Context, clientKey string) ratelimit.Decision
}

// RateLimit возвращает HTTP middleware, ограничивающий частоту запросов
// по клиентскому адресу. Отклоненный запрос получает 429 и не доходит
// до обработчика. Ответ всегда несет заголовки X-RateLimit-Remaining
// и X-RateLimit-Reset.
func RateLimit(limiter Admitter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			decision := limiter.Admit(r.Context(), key)

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				metrics.RateLimitRejectedTotal.Inc()
				log.Warn("too many requests", slog.String("client", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests, please try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey определяет клиента по первому адресу из X-Forwarded-For,
// иначе по адресу соединения без порта.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if addr := strings.TrimSpace(parts[0]); addr != "" {
			return addr
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
