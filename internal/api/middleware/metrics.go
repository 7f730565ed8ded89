// metrics.go — Prometheus HTTP метрики панели.
// Регистрирует метрики: ad_http_requests_total, ad_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_http_requests_total",
			Help: "Общее количество HTTP-запросов к Admin Dashboard",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ad_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Admin Dashboard в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого маршрута.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			path := routeLabel(r)
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// routeLabel возвращает шаблон маршрута chi (/admin/teams/{id}/edit) вместо
// фактического пути, чтобы id записей не раздували кардинальность.
// Запросы без маршрута сводятся к одной метке.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return normalizePath(r.URL.Path)
	}
	pattern := rctx.RoutePattern()
	if pattern == "" {
		return normalizePath(r.URL.Path)
	}
	// Вложенные Route дают шаблоны вида /admin/teams/*/players/{id}/edit.
	return strings.ReplaceAll(pattern, "/*/", "/")
}

// normalizePath оставляет только известные служебные пути.
func normalizePath(path string) string {
	switch path {
	case "/health/live", "/health/ready", "/metrics", "/admin/login":
		return path
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static/*"
	}
	return "unmatched"
}
