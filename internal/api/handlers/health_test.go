package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// staticHealth — фиксированное состояние зависимостей.
type staticHealth map[string]bool

func (s staticHealth) Health() map[string]bool { return s }

func TestHealthLive(t *testing.T) {
	h := NewHealthHandler(nil)
	h.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.HealthLive(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d, ожидается %d", rec.Code, http.StatusOK)
	}
	var resp healthLiveResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Service != serviceName || resp.Timestamp != "2026-05-01T12:00:00Z" {
		t.Errorf("ответ = %+v", resp)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		deps       DependencyHealth
		wantCode   int
		wantStatus string
	}{
		{"всё доступно", staticHealth{"sports-api": true, "jwks": true}, http.StatusOK, "ok"},
		{"backend недоступен", staticHealth{"sports-api": false, "jwks": true}, http.StatusServiceUnavailable, "fail"},
		{"проверок ещё нет", staticHealth{}, http.StatusOK, "degraded"},
		{"не инициализирован", nil, http.StatusServiceUnavailable, "fail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.deps).HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("код ответа = %d, ожидается %d", rec.Code, tt.wantCode)
			}
			var resp healthReadyResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, ожидается %q", resp.Status, tt.wantStatus)
			}
		})
	}
}

func TestHealthReady_SortedChecks(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(staticHealth{"sports-api": true, "jwks": false}).
		HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	var resp healthReadyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Checks) != 2 || resp.Checks[0].Name != "jwks" || resp.Checks[0].Status != "fail" {
		t.Errorf("checks = %+v", resp.Checks)
	}
}

func TestGetMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil).GetMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d, ожидается %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("ответ не содержит метрик процесса")
	}
}
