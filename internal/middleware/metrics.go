package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation, so a flaky rate-limit
// store shows up on dashboards instead of silently failing open.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// EngagementWrites counts engagement mutations by kind and outcome
// (like/unlike/view, applied/suppressed).
var EngagementWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_engagement_writes_total",
	Help: "Total number of engagement mutations by kind and outcome",
}, []string{"kind", "outcome"})

// InitMetrics creates the Prometheus HTTP instrumentation for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber middleware that records HTTP request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
