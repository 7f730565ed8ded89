package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"от прокси", "abc-123", true},
		{"пустой", "", false},
		{"недопустимые символы", "<script>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
				t.Fatalf("request id = %q, заголовок %q", seen, rec.Header().Get(RequestIDHeader))
			}
			if (seen == tt.incoming) != tt.keep {
				t.Errorf("request id = %q, входящий %q, сохранение = %v", seen, tt.incoming, tt.keep)
			}
		})
	}
}

func TestRequestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{"успех", "/admin/teams", http.StatusOK, "level=INFO"},
		{"ошибка клиента", "/admin/teams", http.StatusNotFound, "level=WARN"},
		{"ошибка сервера", "/admin/teams", http.StatusBadGateway, "level=ERROR"},
		{"статика", "/static/css/app.css", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			h := RequestID()(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("ok"))
			})))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			out := buf.String()
			if tt.wantLevel == "" {
				if out != "" {
					t.Errorf("запись не ожидается: %s", out)
				}
				return
			}
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("лог = %q, ожидается %s", out, tt.wantLevel)
			}
			if !strings.Contains(out, "bytes=2") || !strings.Contains(out, "request_id=") {
				t.Errorf("лог без размера ответа или request_id: %q", out)
			}
		})
	}
}

func TestMetrics_RoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Route("/admin/teams", func(r chi.Router) {
		r.Get("/{id}/edit", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusFound)
		})
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/admin/teams/{id}/edit", "302")
	before := testutil.ToFloat64(counter)
	for _, id := range []string{"t1", "t2", "t3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/teams/"+id+"/edit", nil))
	}
	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("запросов по шаблону = %v, ожидается 3", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health/ready", "/health/ready"},
		{"/static/css/app.css", "/static/*"},
		{"/wp-admin/setup.php", "unmatched"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Errorf("normalizePath(%q) = %q, ожидается %q", tt.path, got, tt.want)
			}
		})
	}
}
