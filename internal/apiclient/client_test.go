package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockAPI создаёт mock HTTP-сервер backend API.
func setupMockAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// newTestClient создаёт клиента с токеном для mock-сервера.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	c, err := New(server.URL+"/", "", 5*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return c.WithToken("tok-1")
}

// TestMatches_List проверяет GET /matches, заголовок авторизации и конверт data.
func TestMatches_List(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/matches" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, ожидается %q", got, "Bearer tok-1")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[{"id":"m1","status":"live","matchday":5,"homeTeam":{"name":"A"},"awayTeam":{"name":"B"}}]}`)
	})

	matches, err := newTestClient(t, server).Matches().List(context.Background())
	if err != nil {
		t.Fatalf("Ошибка List: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("len = %d, ожидается 1", len(matches))
	}
	if matches[0].Status != model.MatchLive || matches[0].Matchday != "5" {
		t.Errorf("получено %+v", matches[0])
	}
	if matches[0].Title() != "A vs B" {
		t.Errorf("Title = %q", matches[0].Title())
	}
}

// TestList_NullData проверяет, что data: null даёт пустой список.
func TestList_NullData(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":null}`)
	})

	got, err := newTestClient(t, server).Sliders().List(context.Background())
	if err != nil {
		t.Fatalf("Ошибка List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ожидается пустой не-nil список, получено %#v", got)
	}
}

// TestAPIError_Message проверяет извлечение сообщения backend.
func TestAPIError_Message(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message", http.StatusBadRequest, `{"message":"الاسم مطلوب"}`, "الاسم مطلوب"},
		{"error", http.StatusConflict, `{"error":"duplicate"}`, "duplicate"},
		{"пустое тело", http.StatusInternalServerError, ``, ""},
		{"не JSON", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			err := newTestClient(t, server).Admin().DeleteCompetition(context.Background(), "c1")
			if err == nil {
				t.Fatal("ожидалась ошибка")
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("ожидается *APIError, получено %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, ожидается %d", apiErr.StatusCode, tt.status)
			}
			if got := Message(err); got != tt.want {
				t.Errorf("Message = %q, ожидается %q", got, tt.want)
			}
		})
	}
}

// TestIsUnauthorized проверяет распознавание 401.
func TestIsUnauthorized(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := newTestClient(t, server).Teams().List(context.Background(), true)
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized = false для %v", err)
	}
	if IsUnauthorized(errors.New("other")) {
		t.Error("IsUnauthorized = true для произвольной ошибки")
	}
}

// TestNoToken проверяет, что защищённый запрос без токена не уходит в сеть.
func TestNoToken(t *testing.T) {
	called := false
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	c, _ := New(server.URL, "", time.Second, testLogger())
	_, err := c.Orders().List(context.Background(), "")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("ожидалась ErrNotAuthenticated, получена %v", err)
	}
	if called {
		t.Error("запрос не должен был дойти до сервера")
	}
}

// TestAuth_Login проверяет вход без токена и разбор ответа.
func TestAuth_Login(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("Login не должен передавать Authorization header")
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@x.iq" || body["password"] != "secret" {
			t.Errorf("тело = %v", body)
		}
		io.WriteString(w, `{"data":{"token":"jwt","user":{"id":"u1","name":"Admin","email":"admin@x.iq","role":"admin"}}}`)
	})

	c, _ := New(server.URL, "", time.Second, testLogger())
	res, err := c.Auth().Login(context.Background(), "admin@x.iq", "secret")
	if err != nil {
		t.Fatalf("Ошибка Login: %v", err)
	}
	if res.Token != "jwt" || res.User.Role != "admin" {
		t.Errorf("получено %+v", res)
	}
}

// TestStore_UploadImage проверяет multipart-загрузку и возврат imageUrl.
func TestStore_UploadImage(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/store/upload" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		file, hdr, err := r.FormFile("image")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "PNGDATA" || hdr.Filename != `logo "a".png` {
			t.Errorf("файл = %q, имя = %q", data, hdr.Filename)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type части = %q", ct)
		}
		io.WriteString(w, `{"data":{"imageUrl":"/uploads/logo.png"}}`)
	})

	url, err := newTestClient(t, server).Store().UploadImage(context.Background(), &model.File{
		Name: `logo "a".png`, ContentType: "image/png", Data: []byte("PNGDATA"),
	})
	if err != nil {
		t.Fatalf("Ошибка UploadImage: %v", err)
	}
	if url != "/uploads/logo.png" {
		t.Errorf("url = %q", url)
	}
}

// TestStore_UploadImage_EmptyURL проверяет ответ без imageUrl.
func TestStore_UploadImage_EmptyURL(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{}}`)
	})

	_, err := newTestClient(t, server).Store().UploadImage(context.Background(), &model.File{Name: "a.png", Data: []byte{1}})
	if !errors.Is(err, ErrEmptyImageURL) {
		t.Errorf("ожидалась ErrEmptyImageURL, получена %v", err)
	}
}

// TestVideoAds_SetActive проверяет, что переключение отправляет только isActive.
func TestVideoAds_SetActive(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/video-ads/v1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if len(r.MultipartForm.Value) != 1 || r.FormValue("isActive") != "false" {
			t.Errorf("форма = %v", r.MultipartForm.Value)
		}
		if len(r.MultipartForm.File) != 0 {
			t.Error("файлы не должны отправляться")
		}
		io.WriteString(w, `{"data":{}}`)
	})

	if err := newTestClient(t, server).VideoAds().SetActive(context.Background(), "v1", false); err != nil {
		t.Fatalf("Ошибка SetActive: %v", err)
	}
}

// TestOrders_ListFilter проверяет передачу фильтра статуса.
func TestOrders_ListFilter(t *testing.T) {
	var gotQuery string
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{"data":[]}`)
	})

	c := newTestClient(t, server)
	if _, err := c.Orders().List(context.Background(), model.OrderPending); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "status=pending" {
		t.Errorf("query = %q", gotQuery)
	}
	if _, err := c.Orders().List(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Errorf("без фильтра query = %q, ожидается пустой", gotQuery)
	}
}

// TestPathEscape проверяет экранирование идентификатора в пути.
func TestPathEscape(t *testing.T) {
	var gotPath string
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		io.WriteString(w, `{"data":{}}`)
	})

	if err := newTestClient(t, server).Teams().DeletePlayer(context.Background(), "t/1", "p 2"); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/teams/t%2F1/players/p%202" {
		t.Errorf("path = %q", gotPath)
	}
}

// TestResolveMediaURL проверяет построение адреса для отображения.
func TestResolveMediaURL(t *testing.T) {
	const base = "https://sports-live.up.railway.app/api"
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"http://x/a.png", "http://x/a.png"},
		{"/uploads/a.png", "https://sports-live.up.railway.app/uploads/a.png"},
		{"uploads/a.png", "https://sports-live.up.railway.app/uploads/a.png"},
	}
	for _, tt := range tests {
		if got := ResolveMediaURL(base, tt.in); got != tt.want {
			t.Errorf("ResolveMediaURL(%q) = %q, ожидается %q", tt.in, got, tt.want)
		}
	}
	if got := ResolveMediaURL("http://localhost:3000/api/", "/a.png"); got != "http://localhost:3000/a.png" {
		t.Errorf("завершающий слеш: %q", got)
	}
}

// TestNew_InvalidCA проверяет ошибку при отсутствующем CA-файле.
func TestNew_InvalidCA(t *testing.T) {
	_, err := New("http://localhost", "/nonexistent/ca.pem", time.Second, testLogger())
	if err == nil || !strings.Contains(err.Error(), "CA") {
		t.Errorf("ожидалась ошибка загрузки CA, получена %v", err)
	}
}
