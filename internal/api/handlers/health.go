// health.go — обработчики health endpoints панели.
// /health/live — liveness probe (процесс жив)
// /health/ready — readiness probe (backend API и JWKS доступны)
// /metrics — Prometheus метрики
package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmad115kobane-wq/adminapp/internal/config"
)

// serviceName — имя сервиса в ответах health endpoints.
const serviceName = "admin-dashboard"

// DependencyHealth — источник состояния зависимостей (topologymetrics).
type DependencyHealth interface {
	// Health возвращает состояние зависимостей: ключ — имя, true — доступна.
	Health() map[string]bool
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	deps        DependencyHealth
	promHandler http.Handler
	now         func() time.Time
}

// NewHealthHandler создаёт обработчик health endpoints.
// deps может быть nil: тогда readiness возвращает "fail".
func NewHealthHandler(deps DependencyHealth) *HealthHandler {
	return &HealthHandler{
		deps:        deps,
		promHandler: promhttp.Handler(),
		now:         time.Now,
	}
}

// healthCheckResult — результат проверки одной зависимости.
type healthCheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthLiveResponse — ответ liveness probe.
type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// healthReadyResponse — ответ readiness probe.
type healthReadyResponse struct {
	Status    string              `json:"status"`
	Timestamp string              `json:"timestamp"`
	Version   string              `json:"version"`
	Service   string              `json:"service"`
	Checks    []healthCheckResult `json:"checks"`
}

// HealthLive — liveness probe. Возвращает 200 если процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthLiveResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	})
}

// HealthReady — readiness probe по состоянию зависимостей.
// Возвращает 200 (ok/degraded) или 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := healthReadyResponse{
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
		Checks:    []healthCheckResult{},
	}

	switch {
	case h.deps == nil:
		resp.Status = "fail"
		resp.Checks = append(resp.Checks, healthCheckResult{Name: "dephealth", Status: "fail", Message: "не инициализирован"})
	default:
		health := h.deps.Health()
		names := make([]string, 0, len(health))
		for name := range health {
			names = append(names, name)
		}
		sort.Strings(names)

		statuses := make([]string, 0, len(names))
		for _, name := range names {
			status := "ok"
			if !health[name] {
				status = "fail"
			}
			statuses = append(statuses, status)
			resp.Checks = append(resp.Checks, healthCheckResult{Name: name, Status: status})
		}
		if len(names) == 0 {
			// Первая проверка ещё не завершилась.
			statuses = append(statuses, "degraded")
		}
		resp.Status = overallStatus(statuses...)
	}

	code := http.StatusOK
	if resp.Status == "fail" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// overallStatus определяет итоговый статус из статусов зависимостей.
// Если хотя бы одна зависимость fail — итог fail.
// Если хотя бы одна degraded — итог degraded.
// Иначе — ok.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == "fail" {
			return "fail"
		}
		if s == "degraded" {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return "degraded"
	}
	return "ok"
}
