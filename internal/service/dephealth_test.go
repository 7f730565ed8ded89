// dephealth_test.go — unit-тесты вычисления путей health check и сборки сервиса.
package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestAPIHealthPath проверяет вычисление пути health check backend.
func TestAPIHealthPath(t *testing.T) {
	tests := []struct {
		name     string
		apiURL   string
		path     string
		expected string
	}{
		{
			name:     "по умолчанию — health под путём API",
			apiURL:   "https://sports-live.up.railway.app/api",
			expected: "/api/health",
		},
		{
			name:     "завершающий слеш API",
			apiURL:   "https://sports-live.up.railway.app/api/",
			path:     "health",
			expected: "/api/health",
		},
		{
			name:     "абсолютный путь используется как есть",
			apiURL:   "https://sports-live.up.railway.app/api",
			path:     "/healthz",
			expected: "/healthz",
		},
		{
			name:     "API без пути",
			apiURL:   "http://localhost:3000",
			expected: "/health",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := apiHealthPath(tt.apiURL, tt.path)
			if result != tt.expected {
				t.Errorf("apiHealthPath(%q, %q) = %q, ожидалось %q", tt.apiURL, tt.path, result, tt.expected)
			}
		})
	}
}

// TestURLPath проверяет извлечение пути JWKS.
func TestURLPath(t *testing.T) {
	if got := urlPath("https://idp.example.com/.well-known/jwks.json", "/"); got != "/.well-known/jwks.json" {
		t.Errorf("urlPath = %q", got)
	}
	if got := urlPath("https://idp.example.com", "/"); got != "/" {
		t.Errorf("urlPath без пути = %q, ожидалось /", got)
	}
}

// TestNewDephealthService проверяет регистрацию зависимостей в отдельном registry.
func TestNewDephealthService(t *testing.T) {
	cfg := DephealthConfig{
		ServiceID:     "admin-dashboard",
		Group:         "sports",
		APIURL:        "https://sports-live.up.railway.app/api",
		JWKSURL:       "https://idp.example.com/.well-known/jwks.json",
		CheckInterval: 15 * time.Second,
	}
	ds, err := NewDephealthServiceWithRegisterer(cfg, testLogger(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewDephealthServiceWithRegisterer: %v", err)
	}
	if ds == nil {
		t.Fatal("сервис не создан")
	}
}
