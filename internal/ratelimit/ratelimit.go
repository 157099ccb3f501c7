// Package ratelimit реализует ограничение частоты запросов по скользящему окну
// поверх Redis: каждому клиенту разрешается не более limit запросов за window.
// Состояние окна хранится в ZSET, решение принимается атомарно Lua-скриптом.
//
// При недоступности Redis ограничитель деградирует до локального token bucket
// с той же средней скоростью, поэтому отказ бэкенда не останавливает сервис,
// но и не отключает контроль допуска полностью.
package ratelimit

import (
	"context"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/gourav1008/NotesApp/internal/lib/sl"
	"github.com/gourav1008/NotesApp/internal/metrics"
)

const slidingWindowLua = `
local key = KEYS[1]
local window_ms = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])
local now_ms = tonumber(ARGV[3])
local member = ARGV[4]

redis.call("ZREMRANGEBYSCORE", key, 0, now_ms - window_ms)
local count = redis.call("ZCARD", key)
if count >= limit then
  local reset = now_ms + window_ms
  local oldest = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
  if oldest[2] then
    reset = tonumber(oldest[2]) + window_ms
  end
  return {0, 0, reset}
end
redis.call("ZADD", key, now_ms, member)
redis.call("PEXPIRE", key, window_ms)
return {1, limit - count - 1, now_ms + window_ms}
`

// Decision результат проверки допуска одного запроса.
type Decision struct {
	Allowed   bool      // Пропущен ли запрос
	Remaining int       // Сколько запросов осталось в текущем окне
	ResetAt   time.Time // Когда окно освободится
}

// Limiter ограничитель частоты запросов со скользящим окном поверх Redis.
type Limiter struct {
	rdb      *redis.Client
	limit    int
	window   time.Duration
	script   *redis.Script
	fallback *rate.Limiter
	log      *slog.Logger
}

// New создаёт Limiter с лимитом limit запросов за окно window.
func New(rdb *redis.Client, limit int, window time.Duration, log *slog.Logger) *Limiter {
	return &Limiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		script:   redis.NewScript(slidingWindowLua),
		fallback: rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit),
		log:      log,
	}
}

// Admit решает, пропустить ли очередной запрос клиента clientKey.
// Ошибки Redis не возвращаются наружу: решение принимает локальный
// ограничитель, а сбой фиксируется в логе и метриках.
func (l *Limiter) Admit(ctx context.Context, clientKey string) Decision {
	now := time.Now()
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.Itoa(rand.Int())

	res, err := l.script.Run(ctx, l.rdb,
		[]string{"notesapp:ratelimit:" + clientKey},
		l.window.Milliseconds(), l.limit, now.UnixMilli(), member,
	).Result()
	if err != nil {
		metrics.RateLimitFallbackTotal.Inc()
		l.log.Error("rate limit backend unavailable, using local fallback", sl.Err(err))
		return l.admitLocal(now)
	}

	values, ok := res.([]any)
	if !ok || len(values) < 3 {
		metrics.RateLimitFallbackTotal.Inc()
		l.log.Error("rate limit script returned unexpected result")
		return l.admitLocal(now)
	}

	return Decision{
		Allowed:   toInt64(values[0]) == 1,
		Remaining: int(toInt64(values[1])),
		ResetAt:   time.UnixMilli(toInt64(values[2])),
	}
}

func (l *Limiter) admitLocal(now time.Time) Decision {
	allowed := l.fallback.Allow()
	remaining := int(l.fallback.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   allowed,
		Remaining: remaining,
		ResetAt:   now.Add(l.window),
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if parsed, err := strconv.ParseInt(t, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}
