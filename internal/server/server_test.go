package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/api/handlers"
	"github.com/ahmad115kobane-wq/adminapp/internal/api/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/config"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	uihandlers "github.com/ahmad115kobane-wq/adminapp/internal/ui/handlers"
	uimiddleware "github.com/ahmad115kobane-wq/adminapp/internal/ui/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testRouter собирает роутер с backend, который не отвечает.
func testRouter(t *testing.T) (http.Handler, *auth.SessionManager) {
	t.Helper()
	logger := testLogger()
	cfg := &config.Config{DefaultLang: "ar", ShutdownTimeout: time.Second}

	api, err := apiclient.New("http://127.0.0.1:1/api", "", time.Second, logger)
	if err != nil {
		t.Fatal(err)
	}
	sm, err := auth.NewSessionManager("test-key", false, time.Hour, nil)
	if err != nil {
		t.Fatal(err)
	}
	store := state.New(100, time.Hour)
	deps := &uihandlers.PageDeps{API: api, Store: store, Location: time.UTC}

	ui := &UIComponents{
		AuthHandler:      uihandlers.NewAuthHandler(auth.NewAuthenticator(api, nil, sm, nil, logger), sm, store, logger),
		AuthMiddleware:   uimiddleware.NewUIAuth(sm, logger),
		DashboardHandler: uihandlers.NewDashboardHandler(deps, logger),
		Pages:            uihandlers.Pages(deps, logger),
	}
	return NewRouter(cfg, logger, handlers.NewHealthHandler(nil), ui), sm
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Public(t *testing.T) {
	router, _ := testRouter(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantType string
	}{
		{"liveness", "/health/live", http.StatusOK, "application/json"},
		{"readiness без мониторинга", "/health/ready", http.StatusServiceUnavailable, "application/json"},
		{"стили", "/static/css/app.css", http.StatusOK, "text/css; charset=utf-8"},
		{"страница входа", "/admin/login", http.StatusOK, "text/html; charset=utf-8"},
		{"неизвестный путь", "/nope", http.StatusNotFound, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Errorf("код ответа = %d, ожидается %d", rec.Code, tt.wantCode)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.wantType {
				t.Errorf("Content-Type = %q, ожидается %q", ct, tt.wantType)
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("нет заголовка X-Request-ID")
			}
		})
	}
}

func TestRouter_NotFoundEnvelope(t *testing.T) {
	router, _ := testRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/nope", nil))
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q, ожидается NOT_FOUND", body.Error.Code)
	}
}

func TestRouter_RequiresSession(t *testing.T) {
	router, _ := testRouter(t)

	for _, path := range []string{"/admin/", "/admin/teams", "/admin/orders", "/admin/video-ads"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusFound || rec.Header().Get("Location") != uimiddleware.LoginPath {
				t.Errorf("ответ = %d %q, ожидается redirect на вход", rec.Code, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRouter_RootRedirect(t *testing.T) {
	router, _ := testRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin/" {
		t.Errorf("ответ = %d %q, ожидается redirect на /admin/", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRouter_WithSession(t *testing.T) {
	router, sm := testRouter(t)

	cookieRec := httptest.NewRecorder()
	err := sm.SetSessionCookie(cookieRec, &auth.SessionData{
		ID:        "s1",
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
		Name:      "Admin",
		Role:      "admin",
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/admin/", "/admin/competitions", "/admin/events"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			for _, c := range cookieRec.Result().Cookies() {
				req.AddCookie(c)
			}
			// Backend недоступен: страница всё равно отрисовывается с уведомлением.
			rec := serve(router, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("код ответа = %d, ожидается %d", rec.Code, http.StatusOK)
			}
			if !strings.Contains(rec.Body.String(), "Admin") {
				t.Error("имя оператора не отрисовано")
			}
		})
	}
}
