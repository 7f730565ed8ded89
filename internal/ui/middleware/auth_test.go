package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestUIAuth проверяет пропуск, redirect без сессии и отказ для истёкшей сессии.
func TestUIAuth(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sm, err := auth.NewSessionManager("k", false, time.Hour, clock)
	if err != nil {
		t.Fatal(err)
	}
	valid, _ := sm.Encrypt(&auth.SessionData{ID: "s1", ExpiresAt: clock.Now().Add(time.Minute).Unix()})
	expired, _ := sm.Encrypt(&auth.SessionData{ID: "s2", ExpiresAt: clock.Now().Add(-time.Minute).Unix()})

	var seen *auth.SessionData
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := NewUIAuth(sm, testLogger()).Middleware()(next)

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantID     string
	}{
		{"валидная сессия", valid, http.StatusNoContent, "s1"},
		{"без cookie", "", http.StatusFound, ""},
		{"истёкшая сессия", expired, http.StatusFound, ""},
		{"повреждённый cookie", "garbage", http.StatusFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/admin/matches", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("статус = %d, ожидается %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusFound && rec.Header().Get("Location") != LoginPath {
				t.Errorf("Location = %q", rec.Header().Get("Location"))
			}
			if tt.wantID != "" && (seen == nil || seen.ID != tt.wantID) {
				t.Errorf("сессия в контексте = %+v", seen)
			}
		})
	}
}
