// Package metrics содержит счётчики Prometheus, публикуемые на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RateLimitRejectedTotal количество запросов, отклонённых ограничителем.
	RateLimitRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notesapp_ratelimit_rejected_total",
		Help: "Number of requests rejected by the rate limiter.",
	})

	// RateLimitFallbackTotal количество решений, принятых локальным
	// ограничителем из-за недоступности Redis.
	RateLimitFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notesapp_ratelimit_fallback_total",
		Help: "Number of admission decisions made by the local fallback limiter.",
	})

	// AuditDroppedTotal количество записей журнала, потерянных из-за
	// переполнения очереди.
	AuditDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notesapp_audit_dropped_total",
		Help: "Number of audit entries dropped because the queue was full.",
	})

	// AuditWriteErrorsTotal количество неудачных записей журнала в хранилище.
	AuditWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notesapp_audit_write_errors_total",
		Help: "Number of audit entries that failed to persist.",
	})
)
